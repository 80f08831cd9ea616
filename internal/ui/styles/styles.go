// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4B5563"}

	// Brand
	BrandColor       = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	BrandAccentColor = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	StatusErrorBgColor = lipgloss.AdaptiveColor{Light: "#FEF2F2", Dark: "#3F1D1D"}

	// Buttons
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#1D4ED8"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#0D9488"}
	ButtonDisabledBgColor     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#374151"}

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonDisabledBgColor)

	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(BrandColor)
	SubtitleStyle = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	LabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	MutedStyle    = lipgloss.NewStyle().Foreground(TextMutedColor)
	LinkStyle     = lipgloss.NewStyle().Foreground(BrandAccentColor).Underline(true)
	ErrorStyle    = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Background(StatusErrorBgColor).
			Padding(0, 1)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	InputBoxFocusedStyle = InputBoxStyle.BorderForeground(BorderFocusColor)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(1, 2)
)
