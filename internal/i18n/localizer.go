package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer renders catalog messages for one locale.
type Localizer struct {
	locale  string
	bundle  *Bundle
	printer *message.Printer
}

// NewLocalizer returns a localizer for locale using the embedded bundle.
// Unknown locales fall back to BaseLocale.
func NewLocalizer(locale string) *Localizer {
	b := Default()
	if !b.HasLocale(locale) {
		locale = BaseLocale
	}
	return &Localizer{
		locale:  locale,
		bundle:  b,
		printer: message.NewPrinter(language.MustParse(locale)),
	}
}

// Locale returns the resolved locale identifier.
func (l *Localizer) Locale() string {
	return l.locale
}

// T returns the message for key formatted with args. Unknown keys are
// returned unchanged so a missing translation is visible rather than blank.
func (l *Localizer) T(key string, args ...any) string {
	if _, ok := l.bundle.Message(l.locale, key); !ok {
		return key
	}
	return l.printer.Sprintf(key, args...)
}
