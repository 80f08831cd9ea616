// Package registration implements the account registration workflow: input
// validation, the form state, and the submission controller that drives a
// single in-flight registration against an authentication collaborator.
//
// The package owns no transport, storage, or session mechanics. It talks to
// the outside world only through AuthSessionClient and Navigator.
package registration

// Input holds the four registration fields as typed by the user.
type Input struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Field identifies one input field.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPassword
	FieldConfirmPassword
)

// Fields lists every field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPassword:
		return "password"
	case FieldConfirmPassword:
		return "confirmPassword"
	default:
		return "unknown"
	}
}

// Value returns the current value of field f.
func (in Input) Value(f Field) string {
	switch f {
	case FieldName:
		return in.Name
	case FieldEmail:
		return in.Email
	case FieldPassword:
		return in.Password
	case FieldConfirmPassword:
		return in.ConfirmPassword
	}
	return ""
}

// With returns a copy of in with field f set to value.
func (in Input) With(f Field, value string) Input {
	switch f {
	case FieldName:
		in.Name = value
	case FieldEmail:
		in.Email = value
	case FieldPassword:
		in.Password = value
	case FieldConfirmPassword:
		in.ConfirmPassword = value
	}
	return in
}

// Visibility identifies one of the two password visibility toggles.
type Visibility int

const (
	VisibilityPassword Visibility = iota
	VisibilityConfirmPassword
)
