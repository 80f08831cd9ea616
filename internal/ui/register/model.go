// Package register implements the account registration page.
//
// The page is a thin view over registration.Controller: it mirrors typed
// text into the controller, starts submissions through Begin, runs Execute
// in a tea.Cmd, and hands the SubmittedMsg back to Complete on the update
// loop.
package register

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/enernova/enernova/internal/keys"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
	"github.com/enernova/enernova/internal/router"
)

// Zone IDs for mouse hit-testing.
const (
	zoneSubmit        = "register-submit"
	zoneLogin         = "register-login"
	zoneTogglePass    = "register-toggle-password"
	zoneToggleConfirm = "register-toggle-confirm"
	zoneFieldPrefix   = "register-field-"
)

const inputWidth = 32

// focusButton is the focus index of the submit button; 0..3 are the fields.
var focusButton = len(registration.Fields)

// SubmittedMsg carries a finished registration call back to the update loop.
type SubmittedMsg struct {
	Result registration.Result
}

// spinnerTickMsg advances the busy spinner.
type spinnerTickMsg struct{}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model is the registration page.
type Model struct {
	ctx  context.Context
	ctrl *registration.Controller
	nav  registration.Navigator
	tr   registration.Translator

	inputs       []textinput.Model
	focus        int
	spinnerFrame int
	width        int
	height       int
}

// New builds the page around ctrl. Inputs are seeded from the controller's
// current form so a rebuilt page keeps what the user typed.
func New(ctx context.Context, ctrl *registration.Controller, nav registration.Navigator, tr registration.Translator) Model {
	m := Model{
		ctx:  ctx,
		ctrl: ctrl,
		nav:  nav,
		tr:   tr,
	}

	in := ctrl.Form().Input()
	m.inputs = make([]textinput.Model, len(registration.Fields))
	for i, f := range registration.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = inputWidth
		ti.CharLimit = 256
		ti.SetValue(in.Value(f))
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	m.applyVisibility()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the available area.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Focused returns the focused index: a field index, or len(Fields) for the
// submit button.
func (m Model) Focused() int {
	return m.focus
}

// Busy reports whether a submission is in flight.
func (m Model) Busy() bool {
	return m.ctrl.Form().Busy()
}

// Update handles messages for the page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmittedMsg:
		m.ctrl.Complete(msg.Result)
		return m, nil

	case spinnerTickMsg:
		if !m.Busy() {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		return m, spinnerTick()

	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
		return m, nil
	}

	if m.focus < focusButton {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Submit):
		return m.submit()

	case key.Matches(msg, keys.Form.Confirm):
		if m.focus >= focusButton-1 {
			return m.submit()
		}
		m = m.setFocus(m.focus + 1)
		return m, textinput.Blink

	case key.Matches(msg, keys.Form.Next):
		m = m.setFocus((m.focus + 1) % (focusButton + 1))
		return m, textinput.Blink

	case key.Matches(msg, keys.Form.Prev):
		m = m.setFocus((m.focus + focusButton) % (focusButton + 1))
		return m, textinput.Blink

	case key.Matches(msg, keys.Form.TogglePassword):
		return m.toggle(registration.VisibilityPassword), nil

	case key.Matches(msg, keys.Form.ToggleConfirm):
		return m.toggle(registration.VisibilityConfirmPassword), nil

	case key.Matches(msg, keys.Form.Login):
		return m.login(), nil
	}

	if m.focus >= focusButton {
		return m, nil
	}
	// Fields are read-only while a submission is in flight.
	if m.Busy() {
		return m, nil
	}

	field := registration.Fields[m.focus]
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if v := m.inputs[m.focus].Value(); v != m.ctrl.Form().Input().Value(field) {
		m.ctrl.SetField(field, v)
	}
	return m, cmd
}

func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if z := zone.Get(zoneSubmit); z != nil && z.InBounds(msg) {
		m = m.setFocus(focusButton)
		return m.submit()
	}
	if z := zone.Get(zoneLogin); z != nil && z.InBounds(msg) {
		return m.login(), nil
	}
	if z := zone.Get(zoneTogglePass); z != nil && z.InBounds(msg) {
		return m.toggle(registration.VisibilityPassword), nil
	}
	if z := zone.Get(zoneToggleConfirm); z != nil && z.InBounds(msg) {
		return m.toggle(registration.VisibilityConfirmPassword), nil
	}
	for i := range registration.Fields {
		if z := zone.Get(fieldZoneID(i)); z != nil && z.InBounds(msg) {
			return m.setFocus(i), textinput.Blink
		}
	}
	return m, nil
}

// submit starts one submit cycle. The collaborator call runs off the update
// loop and reports back through SubmittedMsg.
func (m Model) submit() (Model, tea.Cmd) {
	req, ok := m.ctrl.Begin()
	if !ok {
		return m, nil
	}
	m.spinnerFrame = 0

	ctx, ctrl := m.ctx, m.ctrl
	run := func() tea.Msg {
		return SubmittedMsg{Result: ctrl.Execute(ctx, req)}
	}
	return m, tea.Batch(run, spinnerTick())
}

func (m Model) login() Model {
	if m.Busy() {
		log.Debug(log.CatUI, "login link ignored while submitting")
		return m
	}
	log.Debug(log.CatUI, "login link activated")
	m.nav.GoTo(router.Login)
	return m
}

func (m Model) toggle(which registration.Visibility) Model {
	m.ctrl.ToggleVisibility(which)
	m.applyVisibility()
	return m
}

func (m Model) setFocus(i int) Model {
	if m.focus < focusButton {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if m.focus < focusButton {
		m.inputs[m.focus].Focus()
	}
	return m
}

// applyVisibility sets the echo mode of both password inputs from the form.
func (m *Model) applyVisibility() {
	form := m.ctrl.Form()
	for i, f := range registration.Fields {
		var which registration.Visibility
		switch f {
		case registration.FieldPassword:
			which = registration.VisibilityPassword
		case registration.FieldConfirmPassword:
			which = registration.VisibilityConfirmPassword
		default:
			continue
		}
		if form.Visible(which) {
			m.inputs[i].EchoMode = textinput.EchoNormal
		} else {
			m.inputs[i].EchoMode = textinput.EchoPassword
			m.inputs[i].EchoCharacter = '•'
		}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func fieldZoneID(i int) string {
	return zoneFieldPrefix + registration.Fields[i].String()
}
