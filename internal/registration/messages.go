package registration

// Catalog keys for every user-visible string the workflow produces.
const (
	KeyRequired   = "register.error.required"
	KeyMismatch   = "register.error.mismatch"
	KeyTooShort   = "register.error.too_short"
	KeyFailed     = "register.error.failed"
	KeyUnexpected = "register.error.unexpected"
)

// Translator resolves a catalog key to display text.
type Translator interface {
	T(key string, args ...any) string
}
