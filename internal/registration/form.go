package registration

// FormState is the registration form's field values and UI flags.
//
// FormState is immutable - every operation returns a new FormState and
// leaves the receiver untouched.
type FormState struct {
	input        Input
	showPassword bool
	showConfirm  bool
	busy         bool
	errMsg       string
}

// NewFormState returns an empty, idle form.
func NewFormState() FormState {
	return FormState{}
}

// Input returns the current field values.
func (f FormState) Input() Input {
	return f.input
}

// Busy reports whether a submission is in flight.
func (f FormState) Busy() bool {
	return f.busy
}

// Error returns the displayed error message, or "" if none.
func (f FormState) Error() string {
	return f.errMsg
}

// Visible reports whether the given password field is shown in clear text.
func (f FormState) Visible(which Visibility) bool {
	if which == VisibilityConfirmPassword {
		return f.showConfirm
	}
	return f.showPassword
}

// SetField updates one field and clears any displayed error.
func (f FormState) SetField(field Field, value string) FormState {
	f.input = f.input.With(field, value)
	f.errMsg = ""
	return f
}

// ToggleVisibility flips one password visibility flag.
func (f FormState) ToggleVisibility(which Visibility) FormState {
	switch which {
	case VisibilityPassword:
		f.showPassword = !f.showPassword
	case VisibilityConfirmPassword:
		f.showConfirm = !f.showConfirm
	}
	return f
}

// BeginSubmission marks the form busy and clears the error.
// Returns ErrBusy and the unchanged form if a submission is in flight.
func (f FormState) BeginSubmission() (FormState, error) {
	if f.busy {
		return f, ErrBusy
	}
	f.busy = true
	f.errMsg = ""
	return f, nil
}

// CompleteSuccess clears the busy flag. The caller navigates afterwards.
func (f FormState) CompleteSuccess() FormState {
	f.busy = false
	return f
}

// CompleteFailure clears the busy flag and shows message.
func (f FormState) CompleteFailure(message string) FormState {
	f.busy = false
	f.errMsg = message
	return f
}
