// Package logpanel shows recent debug log entries inside the TUI.
package logpanel

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/enernova/enernova/internal/keys"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/ui/styles"
)

// MaxEntries bounds the retained log lines.
const MaxEntries = 500

// Model is the log panel state.
type Model struct {
	listener *log.LogListener
	entries  []string
	visible  bool
	viewport viewport.Model
	width    int
	height   int
}

// New subscribes to the logger for the lifetime of ctx. When logging is not
// initialized the panel stays empty.
func New(ctx context.Context) Model {
	return Model{
		listener: log.NewListener(ctx),
		viewport: viewport.New(0, 0),
	}
}

// Listen returns the command that waits for the next log entry.
func (m Model) Listen() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// Visible reports whether the panel is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the panel.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.viewport.GotoBottom()
	}
	return m
}

// Entries returns the retained log lines, oldest first.
func (m Model) Entries() []string {
	return m.entries
}

// SetSize sets the available area.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-4, 3)
	m.refresh()
	return m
}

// Update handles log events and, while visible, scrolling and closing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		m.entries = append(m.entries, strings.TrimRight(msg.Payload, "\n"))
		if over := len(m.entries) - MaxEntries; over > 0 {
			m.entries = m.entries[over:]
		}
		atBottom := m.viewport.AtBottom()
		m.refresh()
		if atBottom {
			m.viewport.GotoBottom()
		}
		return m, m.Listen()

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		if key.Matches(msg, keys.Landing.Back) || key.Matches(msg, keys.App.Logs) {
			m.visible = false
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if !m.visible {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) refresh() {
	lines := make([]string, len(m.entries))
	for i, e := range m.entries {
		lines[i] = ansi.Truncate(e, m.viewport.Width, "…")
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// View renders the panel.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	title := styles.TitleStyle.Render("Debug log")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View()))
	return box
}
