package registration

// Phase is the submission state machine's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmissionState is the active phase plus the failure message when the
// phase is PhaseFailed.
type SubmissionState struct {
	Phase   Phase
	Message string
}

// CanSubmit reports whether a new attempt may start: only from Idle or
// Failed. A succeeded form has already created its account.
func (s SubmissionState) CanSubmit() bool {
	return s.Phase == PhaseIdle || s.Phase == PhaseFailed
}
