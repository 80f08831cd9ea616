package landing

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/enernova/enernova/internal/i18n"
	"github.com/enernova/enernova/internal/session"
)

// TestMain initializes the global zone manager for all tests in this package.
func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func view(m Model) string {
	return ansi.Strip(zone.Scan(m.View()))
}

func TestContributor_ShowsSessionUser(t *testing.T) {
	m := New(PageContributor, i18n.NewLocalizer("id-ID"), "notty").
		SetSession(session.Session{Name: "Budi", Email: "budi@x.com"}, true)

	out := view(m)
	require.Contains(t, out, "EnerNova - Contributor Area")
	require.Contains(t, out, "Selamat datang, Budi!")
	require.Contains(t, out, "budi@x.com")
	require.Contains(t, out, "ctrl+l")
}

func TestContributor_WithoutSession(t *testing.T) {
	m := New(PageContributor, i18n.NewLocalizer("en-US"), "notty")

	out := view(m)
	require.Contains(t, out, "Dashboard for journal contributors.")
	require.NotContains(t, out, "Welcome")
}

func TestContributor_LogoutKey(t *testing.T) {
	m := New(PageContributor, i18n.NewLocalizer("id-ID"), "notty")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	require.Equal(t, LogoutMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, cmd, "esc does nothing on the contributor page")
}

func TestLogin_NoticeAndBack(t *testing.T) {
	m := New(PageLogin, i18n.NewLocalizer("id-ID"), "notty")
	require.Equal(t, PageLogin, m.Page())
	require.Contains(t, view(m), "Halaman masuk belum tersedia di klien ini.")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.Equal(t, BackMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Nil(t, cmd)
}

func TestView_BadStyleFallsBackToRawMarkdown(t *testing.T) {
	m := New(PageLogin, i18n.NewLocalizer("en-US"), "/missing/style.json")
	require.Contains(t, view(m), "# Sign In")
}

func TestView_PlacesInWindow(t *testing.T) {
	m := New(PageLogin, i18n.NewLocalizer("en-US"), "notty")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	require.Equal(t, 30, lipgloss.Height(out))
}
