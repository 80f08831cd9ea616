// Package toast shows a short notice at the bottom of the screen on top of
// the current page.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/enernova/enernova/internal/ui/styles"
)

// Kind selects the toast's border color.
type Kind int

const (
	KindInfo Kind = iota
	KindError
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// DismissMsg hides the toast whose sequence number matches.
type DismissMsg struct {
	seq int
}

// Model holds the toast state.
type Model struct {
	message string
	kind    Kind
	seq     int
}

// Show displays message and returns the command that dismisses it after d.
// A newer toast is not dismissed by an older toast's timer.
func (m Model) Show(message string, kind Kind, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.kind = kind
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the message shown.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}
	border := styles.BorderFocusColor
	if m.kind == KindError {
		border = styles.StatusErrorColor
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(m.message)
}

// Overlay draws the toast centered one line above the bottom of bg, which
// is width by height cells.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return place(m.View(), bg, width, height)
}

func place(fg, bg string, width, height int) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max(height-len(fgLines)-1, 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		under := bgLines[row]

		left := ansi.Truncate(under, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		var right string
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(under) {
			right = ansi.TruncateLeft(under, end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
