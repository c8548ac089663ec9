package form

import (
	"github.com/luckyblinds/site/svc/contact"
)

// Event drives a form transition.
type Event interface {
	Name() string
}

// Edit sets a single field value.
type Edit struct {
	Field contact.Field
	Value string
}

// Submit asks to send the current values.
type Submit struct{}

// Succeeded records a confirmed dispatch.
type Succeeded struct{}

// Failed records a failed dispatch. Fields carries server-side field errors.
type Failed struct {
	Reason string
	Fields map[string]string
}

func (Edit) Name() string      { return "edit" }
func (Submit) Name() string    { return "submit" }
func (Succeeded) Name() string { return "succeeded" }
func (Failed) Name() string    { return "failed" }

// Transition computes the next state for ev. It has no side effects; a
// Submit that moves the form to StatusSubmitting is the caller's cue to make
// exactly one Submitter call.
func Transition(s State, ev Event) (State, error) {
	if ev == nil {
		return s, ErrInvalidEvent
	}

	switch e := ev.(type) {
	case Edit:
		return edit(s, e)
	case Submit:
		return submit(s)
	case Succeeded:
		if s.Status != StatusSubmitting {
			return s, &ErrNoTransitionAvailable{Status: s.Status, Event: ev.Name()}
		}
		return State{Status: StatusSubmitted, FirstName: contact.FirstName(s.Values.Name)}, nil
	case Failed:
		if s.Status != StatusSubmitting {
			return s, &ErrNoTransitionAvailable{Status: s.Status, Event: ev.Name()}
		}
		next := s.clone()
		next.Status = StatusEditingWithError
		next.Error = e.Reason
		next.Errors = fieldErrors(e.Fields)
		return next, nil
	}
	return s, &ErrNoTransitionAvailable{Status: s.Status, Event: ev.Name()}
}

func edit(s State, e Edit) (State, error) {
	switch s.Status {
	case StatusEditing, StatusEditingWithError:
	case StatusSubmitting:
		return s, ErrSubmitInFlight
	default:
		return s, &ErrNoTransitionAvailable{Status: s.Status, Event: e.Name()}
	}

	next := s.clone()
	next.Values = s.Values.With(e.Field, e.Value)
	delete(next.Errors, e.Field)
	if len(next.Errors) == 0 {
		next.Errors = nil
	}
	return next, nil
}

func submit(s State) (State, error) {
	switch s.Status {
	case StatusSubmitting:
		return s, ErrSubmitInFlight
	case StatusSubmitted:
		return s, ErrAlreadySubmitted
	}

	next := s.clone()
	if errs := contact.Check(s.Values); errs != nil {
		next.Status = StatusEditing
		next.Errors = errs
		next.Error = ""
		return next, nil
	}
	next.Status = StatusSubmitting
	next.Errors = nil
	return next, nil
}

func fieldErrors(in map[string]string) map[contact.Field]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[contact.Field]string, len(in))
	for k, v := range in {
		out[contact.Field(k)] = v
	}
	return out
}
