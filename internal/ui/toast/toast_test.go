package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestToast_ShowAndDismiss(t *testing.T) {
	var m Model
	require.False(t, m.Visible())

	m, cmd := m.Show("Bahasa: English", KindInfo, time.Millisecond)
	require.True(t, m.Visible())
	require.NotNil(t, cmd)

	m = m.Update(cmd())
	require.False(t, m.Visible())
}

func TestToast_StaleDismissIgnored(t *testing.T) {
	var m Model
	m, first := m.Show("one", KindInfo, time.Millisecond)
	m, _ = m.Show("two", KindError, time.Hour)

	m = m.Update(first())
	require.Equal(t, "two", m.Message())
}

func TestToast_OverlayKeepsBackground(t *testing.T) {
	var m Model
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 9) + strings.Repeat(".", 30)
	require.Equal(t, bg, m.Overlay(bg, 30, 10), "hidden toast leaves bg untouched")

	m, _ = m.Show("hi", KindInfo, time.Second)
	out := strings.Split(ansi.Strip(m.Overlay(bg, 30, 10)), "\n")

	require.Len(t, out, 10)
	require.Equal(t, strings.Repeat(".", 30), out[0])
	require.Contains(t, out[7], "hi")
	require.Equal(t, 30, ansi.StringWidth(out[7]))
	require.Equal(t, strings.Repeat(".", 30), out[9])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := strings.Split(place("x", "", 5, 3), "\n")
	require.Len(t, out, 3)
	require.Equal(t, "  x  ", out[1])
}
