package registration

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/enernova/enernova/internal/i18n"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/tracing"
)

// DefaultTimeout bounds one registration call.
const DefaultTimeout = 15 * time.Second

const tracerName = "github.com/enernova/enernova/internal/registration"

// Request is one dispatched registration call. The confirmation password
// is deliberately absent: it never leaves the form.
type Request struct {
	Attempt  uint64
	Name     string
	Email    string
	Password string
}

// Result is the completion of a Request.
type Result struct {
	Attempt uint64
	Outcome AuthOutcome
	Err     error
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout sets the per-call deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithTranslator sets the source of user-visible messages.
func WithTranslator(tr Translator) Option {
	return func(c *Controller) { c.tr = tr }
}

// WithTracer sets the tracer used for submission spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// Controller is the submission state machine for one form instance.
//
// Begin, Complete, SetField and ToggleVisibility must be called from a single
// event loop. Execute only reads the controller's fixed configuration and may
// run on any goroutine.
type Controller struct {
	auth    AuthSessionClient
	nav     Navigator
	tr      Translator
	tracer  trace.Tracer
	timeout time.Duration

	form    FormState
	state   SubmissionState
	attempt uint64
	lastErr error
}

// NewController returns an idle controller with an empty form.
func NewController(auth AuthSessionClient, nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		auth:    auth,
		nav:     nav,
		timeout: DefaultTimeout,
		form:    NewFormState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tr == nil {
		c.tr = i18n.NewLocalizer(i18n.BaseLocale)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// Form returns the current form state.
func (c *Controller) Form() FormState { return c.form }

// State returns the current submission state.
func (c *Controller) State() SubmissionState { return c.state }

// Err returns the typed error behind the current failure, if any:
// *ValidationError or *CollaboratorError.
func (c *Controller) Err() error { return c.lastErr }

// Attempts returns how many submissions passed validation.
func (c *Controller) Attempts() uint64 { return c.attempt }

// SetField updates one field. A displayed failure is cleared and the
// machine returns to Idle; other fields keep their values.
func (c *Controller) SetField(field Field, value string) {
	c.form = c.form.SetField(field, value)
	if c.state.Phase == PhaseFailed {
		c.state = SubmissionState{Phase: PhaseIdle}
		c.lastErr = nil
	}
}

// ToggleVisibility flips a password visibility flag.
func (c *Controller) ToggleVisibility(which Visibility) {
	c.form = c.form.ToggleVisibility(which)
}

// Begin starts a submit cycle. It returns false when the trigger is ignored
// (a submission is in flight or already succeeded) or when validation fails, in which
// case the failure is already shown. On true the caller must pass the
// request to Execute and its result to Complete.
func (c *Controller) Begin() (Request, bool) {
	if !c.state.CanSubmit() || c.form.Busy() {
		log.Debug(log.CatForm, "submit ignored", "phase", c.state.Phase, "attempt", c.attempt)
		return Request{}, false
	}

	if outcome := Validate(c.form.Input()); !outcome.Valid() {
		c.fail(c.tr.T(outcome.Reason.MessageKey()), outcome.Err())
		log.Debug(log.CatForm, "validation failed", "reason", outcome.Reason)
		return Request{}, false
	}

	form, err := c.form.BeginSubmission()
	if err != nil {
		return Request{}, false
	}
	c.form = form
	c.attempt++
	c.state = SubmissionState{Phase: PhaseSubmitting}
	c.lastErr = nil

	in := c.form.Input()
	log.Info(log.CatForm, "submitting registration", "attempt", c.attempt)
	return Request{
		Attempt:  c.attempt,
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}, true
}

type callResult struct {
	outcome AuthOutcome
	err     error
}

// Execute performs the collaborator call for req. Errors, panics and the
// deadline are all reported through Result.Err.
func (c *Controller) Execute(ctx context.Context, req Request) Result {
	ctx, span := c.tracer.Start(ctx, tracing.SpanRegistrationSubmit,
		trace.WithAttributes(attribute.Int64(tracing.AttrRegistrationAttempt, int64(req.Attempt))))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan callResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callResult{err: fmt.Errorf("register panicked: %v", r)}
			}
		}()
		outcome, err := c.auth.Register(ctx, req.Name, req.Email, req.Password)
		done <- callResult{outcome: outcome, err: err}
	}()

	res := Result{Attempt: req.Attempt}
	select {
	case r := <-done:
		res.Outcome, res.Err = r.outcome, r.err
	case <-ctx.Done():
		// A result that is already there wins over the deadline.
		select {
		case r := <-done:
			res.Outcome, res.Err = r.outcome, r.err
		default:
			res.Err = fmt.Errorf("register: %w", ctx.Err())
		}
	}

	switch {
	case res.Err != nil:
		span.SetAttributes(attribute.String(tracing.AttrRegistrationResult, tracing.ResultFault))
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "collaborator fault")
	case res.Outcome.Succeeded():
		span.SetAttributes(attribute.String(tracing.AttrRegistrationResult, tracing.ResultSucceeded))
	default:
		span.SetAttributes(attribute.String(tracing.AttrRegistrationResult, tracing.ResultRejected))
	}
	return res
}

// Complete applies the result of the in-flight request. Results for any
// other attempt, or arriving when nothing is in flight, are dropped.
func (c *Controller) Complete(res Result) {
	if c.state.Phase != PhaseSubmitting || res.Attempt != c.attempt {
		log.Warn(log.CatForm, "stale registration result dropped", "attempt", res.Attempt, "current", c.attempt)
		return
	}

	switch {
	case res.Err != nil:
		msg := c.tr.T(KeyUnexpected)
		log.ErrorErr(log.CatForm, "registration call faulted", res.Err, "attempt", res.Attempt)
		c.fail(msg, &CollaboratorError{Message: msg, Cause: res.Err})

	case res.Outcome.Succeeded():
		c.form = c.form.CompleteSuccess()
		c.state = SubmissionState{Phase: PhaseSucceeded}
		c.lastErr = nil
		log.Info(log.CatForm, "registration succeeded", "attempt", res.Attempt)
		c.nav.GoTo(DefaultLandingRoute)

	default:
		msg := res.Outcome.Message()
		if msg == "" {
			msg = c.tr.T(KeyFailed)
		}
		log.Warn(log.CatForm, "registration rejected", "attempt", res.Attempt, "message", msg)
		c.fail(msg, &CollaboratorError{Message: msg})
	}
}

// Submit runs a whole submit cycle inline and reports whether it succeeded.
func (c *Controller) Submit(ctx context.Context) bool {
	req, ok := c.Begin()
	if !ok {
		return false
	}
	c.Complete(c.Execute(ctx, req))
	return c.state.Phase == PhaseSucceeded
}

func (c *Controller) fail(msg string, err error) {
	c.form = c.form.CompleteFailure(msg)
	c.state = SubmissionState{Phase: PhaseFailed, Message: msg}
	c.lastErr = err
}
