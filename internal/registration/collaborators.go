package registration

import "context"

// DefaultLandingRoute is where a newly registered user is sent.
const DefaultLandingRoute = "/contributor"

// AuthOutcome is the authentication collaborator's answer to a register
// call: success with an opaque session, or failure with an optional message.
type AuthOutcome struct {
	ok      bool
	session any
	message string
}

// Success builds a successful outcome carrying the collaborator's session.
func Success(session any) AuthOutcome {
	return AuthOutcome{ok: true, session: session}
}

// Failure builds a failed outcome. message may be empty.
func Failure(message string) AuthOutcome {
	return AuthOutcome{message: message}
}

// Succeeded reports whether registration succeeded.
func (o AuthOutcome) Succeeded() bool { return o.ok }

// Session returns the opaque session of a successful outcome.
func (o AuthOutcome) Session() any { return o.session }

// Message returns the collaborator-provided failure message, if any.
func (o AuthOutcome) Message() string { return o.message }

// AuthSessionClient registers an account and, on success, establishes the
// authenticated session. A non-nil error is an unexpected fault, distinct
// from a Failure outcome.
type AuthSessionClient interface {
	Register(ctx context.Context, name, email, password string) (AuthOutcome, error)
}

// Navigator performs post-registration navigation.
type Navigator interface {
	GoTo(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// GoTo calls fn(route).
func (fn NavigatorFunc) GoTo(route string) { fn(route) }
