// Package landing renders the pages shown outside the registration form:
// the contributor area reached after registering, and the sign-in notice.
package landing

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/enernova/enernova/internal/keys"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
	"github.com/enernova/enernova/internal/session"
	"github.com/enernova/enernova/internal/ui/markdown"
	"github.com/enernova/enernova/internal/ui/styles"
)

// Page selects which landing page is shown.
type Page int

const (
	PageContributor Page = iota
	PageLogin
)

const (
	zoneLogout = "landing-logout"
	zoneBack   = "landing-back"

	defaultWidth = 72
)

// LogoutMsg asks the root model to end the session.
type LogoutMsg struct{}

// BackMsg asks the root model to return to the previous page.
type BackMsg struct{}

// Model is a landing page.
type Model struct {
	page    Page
	tr      registration.Translator
	style   string
	session session.Session
	hasUser bool
	width   int
	height  int
}

// New returns a landing page. style is passed to the markdown renderer.
func New(page Page, tr registration.Translator, style string) Model {
	return Model{page: page, tr: tr, style: style}
}

// Page returns the page shown.
func (m Model) Page() Page {
	return m.page
}

// SetSession sets the signed-in user shown on the contributor page.
func (m Model) SetSession(s session.Session, ok bool) Model {
	m.session = s
	m.hasUser = ok
	return m
}

// SetSize sets the available area.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles messages for the page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		switch {
		case m.page == PageContributor && key.Matches(msg, keys.Landing.Logout):
			return m, func() tea.Msg { return LogoutMsg{} }
		case m.page == PageLogin && key.Matches(msg, keys.Landing.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		if z := zone.Get(zoneLogout); m.page == PageContributor && z != nil && z.InBounds(msg) {
			return m, func() tea.Msg { return LogoutMsg{} }
		}
		if z := zone.Get(zoneBack); m.page == PageLogin && z != nil && z.InBounds(msg) {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}
	return m, nil
}

// View renders the page.
func (m Model) View() string {
	var body, help string
	switch m.page {
	case PageLogin:
		body = m.render(m.loginMarkdown())
		help = zone.Mark(zoneBack, styles.MutedStyle.Render(m.tr.T("pages.login.help")))
	default:
		body = m.render(m.contributorMarkdown())
		help = zone.Mark(zoneLogout, styles.MutedStyle.Render(m.tr.T("pages.contributor.help")))
	}

	page := lipgloss.JoinVertical(lipgloss.Left, styles.CardStyle.Render(strings.TrimRight(body, "\n")), help)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, page)
	}
	return page
}

func (m Model) contributorMarkdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", m.tr.T("pages.contributor.title"))
	if m.hasUser {
		fmt.Fprintf(&sb, "## %s\n\n", m.tr.T("pages.contributor.welcome", m.session.Name))
	}
	fmt.Fprintf(&sb, "%s\n", m.tr.T("pages.contributor.body"))
	if m.hasUser {
		fmt.Fprintf(&sb, "\n%s\n", m.tr.T("pages.contributor.account", "`"+m.session.Email+"`"))
	}
	return sb.String()
}

func (m Model) loginMarkdown() string {
	return fmt.Sprintf("# %s\n\n%s\n", m.tr.T("pages.login.title"), m.tr.T("pages.login.notice"))
}

// render falls back to the raw markdown when the renderer cannot be built.
func (m Model) render(md string) string {
	width := defaultWidth
	if m.width > 0 {
		width = min(m.width-6, defaultWidth)
	}
	r, err := markdown.New(max(width, 20), m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown renderer", err, "style", m.style)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown render", err)
		return md
	}
	return out
}
