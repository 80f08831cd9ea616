package i18n

import (
	"slices"
	"sync"
)

// Active is a translator whose locale can be switched while the app runs.
// Everything holding an *Active sees the switch on its next lookup.
type Active struct {
	mu sync.RWMutex
	l  *Localizer
}

// NewActive returns an Active translator for locale.
func NewActive(locale string) *Active {
	return &Active{l: NewLocalizer(locale)}
}

// T renders key in the current locale.
func (a *Active) T(key string, args ...any) string {
	a.mu.RLock()
	l := a.l
	a.mu.RUnlock()
	return l.T(key, args...)
}

// Locale returns the current locale.
func (a *Active) Locale() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.l.Locale()
}

// SetLocale switches to locale and returns the locale actually in use.
func (a *Active) SetLocale(locale string) string {
	l := NewLocalizer(locale)
	a.mu.Lock()
	a.l = l
	a.mu.Unlock()
	return l.Locale()
}

// Cycle switches to the next known locale, in sorted order, and returns it.
func (a *Active) Cycle() string {
	locales := Default().Locales()
	i := slices.Index(locales, a.Locale())
	return a.SetLocale(locales[(i+1)%len(locales)])
}
