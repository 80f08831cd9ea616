// Package app contains the root application model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/enernova/enernova/internal/config"
	"github.com/enernova/enernova/internal/i18n"
	"github.com/enernova/enernova/internal/keys"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/pubsub"
	"github.com/enernova/enernova/internal/registration"
	"github.com/enernova/enernova/internal/router"
	"github.com/enernova/enernova/internal/session"
	"github.com/enernova/enernova/internal/ui/landing"
	"github.com/enernova/enernova/internal/ui/logpanel"
	"github.com/enernova/enernova/internal/ui/register"
	"github.com/enernova/enernova/internal/ui/toast"
)

// Config holds the services the root model is built from.
type Config struct {
	Auth       registration.AuthSessionClient
	Sessions   *session.Manager
	Translator *i18n.Active

	// ConfigPath is where the chosen locale is persisted. Empty disables it.
	ConfigPath    string
	MarkdownStyle string
	Timeout       time.Duration

	// Debug enables the in-app log panel (ctrl+x).
	Debug bool
}

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config config.Config
}

// Model is the root application state.
type Model struct {
	cfg    Config
	router *router.Router

	ctrl        *registration.Controller
	register    register.Model
	contributor landing.Model
	login       landing.Model
	toast       toast.Model
	logs        logpanel.Model

	ctx             context.Context
	cancel          context.CancelFunc
	sessionListener *pubsub.ContinuousListener[session.Session]

	width  int
	height int
}

// New creates the root model positioned on the registration page.
// Sessions must already be initialized.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		cfg:         cfg,
		router:      router.New(router.Register),
		contributor: landing.New(landing.PageContributor, cfg.Translator, cfg.MarkdownStyle),
		login:       landing.New(landing.PageLogin, cfg.Translator, cfg.MarkdownStyle),
		ctx:         ctx,
		cancel:      cancel,
	}
	if cfg.Debug {
		m.logs = logpanel.New(ctx)
	}
	if broker := cfg.Sessions.Broker(); broker != nil {
		m.sessionListener = pubsub.NewContinuousListener(ctx, broker)
	}
	m = m.resetForm()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.register.Init()}
	if m.sessionListener != nil {
		cmds = append(cmds, m.sessionListener.Listen())
	}
	if m.cfg.Debug {
		cmds = append(cmds, m.logs.Listen())
	}
	return tea.Batch(cmds...)
}

// Route returns the page being shown.
func (m Model) Route() string {
	return m.router.Current()
}

// Controller returns the registration controller of the current form.
func (m Model) Controller() *registration.Controller {
	return m.ctrl
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.register = m.register.SetSize(msg.Width, msg.Height)
		m.contributor = m.contributor.SetSize(msg.Width, msg.Height)
		m.login = m.login.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		return m, nil

	case log.LogEvent:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.App.Quit):
			return m, tea.Quit
		case m.cfg.Debug && key.Matches(msg, keys.App.Logs) && !m.logs.Visible():
			m.logs = m.logs.Toggle()
			return m, nil
		case key.Matches(msg, keys.App.Language):
			return m.switchLocale()
		}
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}

	case pubsub.Event[session.Session]:
		return m.handleSessionEvent(msg)

	case landing.LogoutMsg:
		if err := m.cfg.Sessions.End(m.ctx); err != nil {
			log.ErrorErr(log.CatSession, "logout failed", err)
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show(m.cfg.Translator.T("pages.notice.logout_failed"), toast.KindError, toast.DefaultDuration)
			return m, cmd
		}
		m.router.Replace(router.Register)
		m = m.resetForm()
		return m, m.register.Init()

	case landing.BackMsg:
		if !m.router.Back() {
			m.router.Replace(router.Register)
		}
		return m, nil

	case register.SubmittedMsg:
		// The result belongs to the form whatever page is showing.
		var cmd tea.Cmd
		m.register, cmd = m.register.Update(msg)
		if m.router.Current() == router.Contributor {
			m = m.syncSession()
		}
		return m, cmd

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config)

	case toast.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil
	}

	return m.delegate(msg)
}

// delegate forwards msg to the page for the current route.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.router.Current() {
	case router.Contributor:
		m.contributor, cmd = m.contributor.Update(msg)
	case router.Login:
		m.login, cmd = m.login.Update(msg)
	default:
		m.register, cmd = m.register.Update(msg)
	}

	if m.router.Current() == router.Contributor {
		m = m.syncSession()
	}
	return m, cmd
}

func (m Model) handleSessionEvent(ev pubsub.Event[session.Session]) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.sessionListener.Listen()}

	switch ev.Type {
	case pubsub.CreatedEvent:
		m.contributor = m.contributor.SetSession(ev.Payload, true)

	case pubsub.DeletedEvent:
		m.contributor = m.contributor.SetSession(session.Session{}, false)
		if m.router.Current() == router.Contributor {
			log.Info(log.CatSession, "session ended while on contributor page")
			m.router.Replace(router.Register)
			m = m.resetForm()
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show(m.cfg.Translator.T("pages.notice.session_ended"), toast.KindInfo, toast.DefaultDuration)
			cmds = append(cmds, cmd, m.register.Init())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) syncSession() Model {
	s, ok := m.cfg.Sessions.Current(m.ctx)
	m.contributor = m.contributor.SetSession(s, ok)
	return m
}

func (m Model) newController() *registration.Controller {
	opts := []registration.Option{registration.WithTranslator(m.cfg.Translator)}
	if m.cfg.Timeout > 0 {
		opts = append(opts, registration.WithTimeout(m.cfg.Timeout))
	}
	return registration.NewController(m.cfg.Auth, m.router, opts...)
}

// resetForm starts a fresh registration form with its own controller.
func (m Model) resetForm() Model {
	m.ctrl = m.newController()
	m.register = register.New(m.ctx, m.ctrl, m.router, m.cfg.Translator).SetSize(m.width, m.height)
	return m
}

// rebuildForm swaps in a controller built from the current settings,
// carrying over the typed input and visibility flags. A shown failure
// message is dropped.
func (m Model) rebuildForm() Model {
	form := m.ctrl.Form()
	ctrl := m.newController()
	for _, f := range registration.Fields {
		ctrl.SetField(f, form.Input().Value(f))
	}
	for _, v := range []registration.Visibility{registration.VisibilityPassword, registration.VisibilityConfirmPassword} {
		if form.Visible(v) {
			ctrl.ToggleVisibility(v)
		}
	}
	m.ctrl = ctrl
	m.register = register.New(m.ctx, m.ctrl, m.router, m.cfg.Translator).SetSize(m.width, m.height)
	return m
}

func (m Model) switchLocale() (tea.Model, tea.Cmd) {
	locale := m.cfg.Translator.Cycle()
	log.Info(log.CatConfig, "locale switched", "locale", locale)

	notice, kind := m.cfg.Translator.T("pages.notice.locale", locale), toast.KindInfo
	if m.cfg.ConfigPath != "" {
		if err := config.SaveLocale(m.cfg.ConfigPath, locale); err != nil {
			log.ErrorErr(log.CatConfig, "saving locale", err, "path", m.cfg.ConfigPath)
			notice, kind = m.cfg.Translator.T("pages.notice.locale_save_failed"), toast.KindError
		}
	}

	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(notice, kind, toast.DefaultDuration)
	return m, cmd
}

// applyConfig applies a reloaded config. A new auth timeout takes effect
// at once when the form can submit; during a submission or after a success
// it waits for the next fresh form.
func (m Model) applyConfig(cfg config.Config) (tea.Model, tea.Cmd) {
	if cfg.Locale != "" && cfg.Locale != m.cfg.Translator.Locale() {
		m.cfg.Translator.SetLocale(cfg.Locale)
	}
	if cfg.Auth.Timeout > 0 && cfg.Auth.Timeout != m.cfg.Timeout {
		m.cfg.Timeout = cfg.Auth.Timeout
		if m.ctrl.State().CanSubmit() {
			m = m.rebuildForm()
		}
		log.Info(log.CatConfig, "auth timeout changed", "timeout", cfg.Auth.Timeout, "applied", m.ctrl.State().CanSubmit())
	}
	if cfg.UI.MarkdownStyle != m.cfg.MarkdownStyle {
		m.cfg.MarkdownStyle = cfg.UI.MarkdownStyle
		m.contributor = landing.New(landing.PageContributor, m.cfg.Translator, cfg.UI.MarkdownStyle).SetSize(m.width, m.height)
		m.login = landing.New(landing.PageLogin, m.cfg.Translator, cfg.UI.MarkdownStyle).SetSize(m.width, m.height)
		m = m.syncSession()
	}

	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(m.cfg.Translator.T("pages.notice.config_reloaded"), toast.KindInfo, toast.DefaultDuration)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.router.Current() {
	case router.Contributor:
		view = m.contributor.View()
	case router.Login:
		view = m.login.View()
	default:
		view = m.register.View()
	}

	if m.logs.Visible() {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.logs.View())
	}
	if m.toast.Visible() && m.width > 0 {
		view = m.toast.Overlay(view, m.width, m.height)
	}
	return zone.Scan(view)
}

// Close stops the session listener.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
