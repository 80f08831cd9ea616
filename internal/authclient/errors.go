package authclient

// Rejection codes.
const (
	CodeConflict = "conflict"
	CodeInvalid  = "invalid"
)

// RejectedError is a refusal by the backend, such as a duplicate email.
// Message is shown to the user as-is and may be empty. Code is one of the
// Code constants or empty when unknown.
type RejectedError struct {
	Code    string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "registration rejected"
	}
	return "registration rejected: " + e.Message
}
