package register

import (
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/enernova/enernova/internal/registration"
	"github.com/enernova/enernova/internal/ui/styles"
)

var labelKeys = map[registration.Field]string{
	registration.FieldName:            "register.label.name",
	registration.FieldEmail:           "register.label.email",
	registration.FieldPassword:        "register.label.password",
	registration.FieldConfirmPassword: "register.label.confirm_password",
}

var placeholderKeys = map[registration.Field]string{
	registration.FieldName:  "register.placeholder.name",
	registration.FieldEmail: "register.placeholder.email",
}

// View renders the page. Zones are marked but not scanned; the root model
// scans the full frame.
func (m Model) View() string {
	form := m.ctrl.Form()

	labels := make([]string, len(registration.Fields))
	labelWidth := 0
	for i, f := range registration.Fields {
		labels[i] = m.tr.T(labelKeys[f])
		labelWidth = max(labelWidth, runewidth.StringWidth(labels[i]))
	}

	var rows []string
	rows = append(rows,
		styles.TitleStyle.Render(m.tr.T("register.title")),
		styles.SubtitleStyle.Render(m.tr.T("register.subtitle")),
		"",
	)

	for i, f := range registration.Fields {
		rows = append(rows, zone.Mark(fieldZoneID(i), m.renderField(i, f, runewidth.FillRight(labels[i], labelWidth))))
	}

	contentWidth := labelWidth + inputWidth + 6
	if msg := form.Error(); msg != "" {
		rows = append(rows, "", styles.ErrorStyle.Render(wordwrap.String(msg, contentWidth)))
	}

	rows = append(rows, "", m.renderButton(form.Busy()), "")
	rows = append(rows,
		styles.MutedStyle.Render(m.tr.T("register.login_prompt"))+" "+
			zone.Mark(zoneLogin, styles.LinkStyle.Render(m.tr.T("register.login_link"))),
		styles.MutedStyle.Render(m.tr.T("register.footer")),
	)

	card := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	help := styles.MutedStyle.Render(wordwrap.String(m.tr.T("register.help"), max(lipgloss.Width(card), 20)))
	page := lipgloss.JoinVertical(lipgloss.Center, card, help)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, page)
	}
	return page
}

func (m Model) renderField(i int, f registration.Field, label string) string {
	in := m.inputs[i]
	if key, ok := placeholderKeys[f]; ok {
		in.Placeholder = m.tr.T(key)
	}

	box := styles.InputBoxStyle
	if m.focus == i {
		box = styles.InputBoxFocusedStyle
	}
	parts := []string{styles.LabelStyle.Render(label), " ", box.Render(in.View())}

	switch f {
	case registration.FieldPassword:
		parts = append(parts, " ", zone.Mark(zoneTogglePass, m.renderToggle(registration.VisibilityPassword)))
	case registration.FieldConfirmPassword:
		parts = append(parts, " ", zone.Mark(zoneToggleConfirm, m.renderToggle(registration.VisibilityConfirmPassword)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderToggle(which registration.Visibility) string {
	text := m.tr.T("register.toggle.show")
	if m.ctrl.Form().Visible(which) {
		text = m.tr.T("register.toggle.hide")
	}
	return styles.LinkStyle.Render(text)
}

func (m Model) renderButton(busy bool) string {
	if busy {
		frame := spinnerFrames[m.spinnerFrame%len(spinnerFrames)]
		return zone.Mark(zoneSubmit, styles.DisabledButtonStyle.Render(frame+" "+m.tr.T("register.button.busy")))
	}

	label := m.tr.T("register.button.submit")
	style := styles.PrimaryButtonStyle
	if m.focus == focusButton {
		style = styles.PrimaryButtonFocusedStyle
	}
	return zone.Mark(zoneSubmit, style.Render(label))
}
