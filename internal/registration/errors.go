package registration

import (
	"errors"
	"fmt"
)

// ErrBusy is returned by FormState.BeginSubmission while a submission is
// already in flight.
var ErrBusy = errors.New("registration: submission already in progress")

// ValidationError is a locally detected input problem. It never reaches the
// network and is fixed by editing the input.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("registration: invalid input: %s", e.Reason)
}

// CollaboratorError is a failure reported by, or raised from, the
// authentication collaborator. Message is what the form displays; Cause is
// set when the call faulted instead of returning an outcome.
type CollaboratorError struct {
	Message string
	Cause   error
}

func (e *CollaboratorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registration: collaborator fault: %v", e.Cause)
	}
	return fmt.Sprintf("registration: rejected: %s", e.Message)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Cause
}

// Fault reports whether the collaborator call faulted rather than rejecting.
func (e *CollaboratorError) Fault() bool {
	return e.Cause != nil
}
