package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/svc/contact"
)

// Form is the single container for one contact form's state. It is safe
// for concurrent use; overlapping submits are rejected, never queued.
type Form struct {
	mu        sync.Mutex
	state     State
	submitter contact.Submitter
	log       *slog.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// WithState starts the form from s instead of an empty form.
func WithState(s State) Option {
	return func(f *Form) {
		f.state = s.clone()
	}
}

// NewForm returns a Form that sends through submitter.
func NewForm(submitter contact.Submitter, opts ...Option) *Form {
	f := &Form{
		state:     New(),
		submitter: submitter,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With(logger.Component("contact_form"))
	return f
}

// State returns a snapshot of the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Edit sets one field.
func (f *Form) Edit(field contact.Field, value string) (State, error) {
	return f.apply(Edit{Field: field, Value: value})
}

// Submit validates the current values and, when they pass, performs exactly
// one Submitter call. It returns the resulting state. Field errors are not
// an error: they are reported in the returned state with no call made.
func (f *Form) Submit(ctx context.Context) (State, error) {
	f.mu.Lock()
	next, err := Transition(f.state, Submit{})
	if err != nil {
		f.mu.Unlock()
		f.log.DebugContext(ctx, "submit rejected", logger.Event("submit"), logger.Error(err))
		return f.State(), err
	}
	f.state = next
	f.mu.Unlock()

	if next.Status != StatusSubmitting {
		return next.clone(), nil
	}

	res := f.submitter.Submit(ctx, next.Values)

	var ev Event = Succeeded{}
	if !res.Success {
		reason := res.Error
		if reason == "" {
			reason = contact.FailureMessage
		}
		ev = Failed{Reason: reason, Fields: res.Fields}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	final, err := Transition(f.state, ev)
	if err != nil {
		// Only this goroutine can leave StatusSubmitting.
		return f.state.clone(), err
	}
	f.state = final
	f.log.DebugContext(ctx, "submit finished", logger.Event(ev.Name()))
	return final.clone(), nil
}

func (f *Form) apply(ev Event) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := Transition(f.state, ev)
	if err != nil {
		return f.state.clone(), err
	}
	f.state = next
	return next.clone(), nil
}
