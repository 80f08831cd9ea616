package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsCategoryAndFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)

	Info(CatForm, "submitting registration", "attempt", 2, "orphan")

	line := buf.String()
	require.Contains(t, line, "[INFO] [form] submitting registration attempt=2 orphan=<missing>")
}

func TestLog_ErrorErrAppendsError(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)

	ErrorErr(CatAuth, "register failed", errors.New("connection refused"))
	ErrorErr(CatAuth, "register failed", nil)

	require.Contains(t, buf.String(), "[ERROR] [auth] register failed error=connection refused")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf)
	SetMinLevel(LevelWarn)

	Debug(CatUI, "hidden debug")
	Info(CatUI, "hidden info")
	Warn(CatUI, "shown warn")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown warn")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "Warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	InitWithWriter(&bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)
	cmd := l.Listen()

	Warn(CatSession, "session expired")

	ev, ok := cmd().(LogEvent)
	require.True(t, ok)
	require.Contains(t, ev.Payload, "[WARN] [session] session expired")
}
