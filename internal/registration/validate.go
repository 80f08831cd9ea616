package registration

import "unicode/utf8"

// MinPasswordLength is the minimum password length in characters.
const MinPasswordLength = 6

// Reason enumerates why an input failed validation.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonRequired
	ReasonMismatch
	ReasonTooShort
)

func (r Reason) String() string {
	switch r {
	case ReasonRequired:
		return "all fields required"
	case ReasonMismatch:
		return "passwords do not match"
	case ReasonTooShort:
		return "password too short"
	default:
		return "valid"
	}
}

// MessageKey returns the catalog key of the user-visible text for r.
func (r Reason) MessageKey() string {
	switch r {
	case ReasonRequired:
		return KeyRequired
	case ReasonMismatch:
		return KeyMismatch
	case ReasonTooShort:
		return KeyTooShort
	default:
		return ""
	}
}

// Outcome is the result of validating one Input.
type Outcome struct {
	Reason Reason
}

// Valid reports whether every rule passed.
func (o Outcome) Valid() bool {
	return o.Reason == ReasonNone
}

// Err returns a *ValidationError for an invalid outcome, nil otherwise.
func (o Outcome) Err() error {
	if o.Valid() {
		return nil
	}
	return &ValidationError{Reason: o.Reason}
}

// Validate checks in against the registration rules in fixed order and
// reports the first failing rule.
func Validate(in Input) Outcome {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return Outcome{Reason: ReasonRequired}
	}
	if in.Password != in.ConfirmPassword {
		return Outcome{Reason: ReasonMismatch}
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return Outcome{Reason: ReasonTooShort}
	}
	return Outcome{}
}
