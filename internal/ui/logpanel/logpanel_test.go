package logpanel

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/pubsub"
)

func entry(s string) log.LogEvent {
	return pubsub.Event[string]{Type: pubsub.CreatedEvent, Payload: s, Timestamp: time.Now()}
}

func TestPanel_CollectsEntries(t *testing.T) {
	m := New(context.Background()).SetSize(80, 20)

	m, _ = m.Update(entry("first\n"))
	m, _ = m.Update(entry("second"))

	require.Equal(t, []string{"first", "second"}, m.Entries())
}

func TestPanel_BoundsEntries(t *testing.T) {
	m := New(context.Background()).SetSize(80, 20)
	for i := range MaxEntries + 10 {
		m, _ = m.Update(entry(fmt.Sprintf("line %d", i)))
	}
	require.Len(t, m.Entries(), MaxEntries)
	require.Equal(t, "line 10", m.Entries()[0])
}

func TestPanel_ToggleAndClose(t *testing.T) {
	m := New(context.Background()).SetSize(80, 20)
	require.Empty(t, m.View())

	m = m.Toggle()
	m, _ = m.Update(entry("session established"))
	require.True(t, m.Visible())
	require.Contains(t, ansi.Strip(m.View()), "session established")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
}

func TestPanel_ReceivesLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	log.InitWithWriter(&buf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := New(ctx)
	cmd := m.Listen()
	require.NotNil(t, cmd)

	log.Info(log.CatUI, "hello panel")

	msg := cmd()
	ev, ok := msg.(log.LogEvent)
	require.True(t, ok, "expected log event, got %T", msg)
	require.Contains(t, ev.Payload, "hello panel")
	require.Contains(t, buf.String(), "hello panel")
}
