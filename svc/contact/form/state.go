package form

import (
	"maps"

	"github.com/luckyblinds/site/svc/contact"
)

// Status is the tagged form state.
type Status string

const (
	StatusEditing          Status = "editing"
	StatusSubmitting       Status = "submitting"
	StatusSubmitted        Status = "submitted"
	StatusEditingWithError Status = "editing_with_error"
)

func (s Status) Name() string { return string(s) }

// State is an immutable snapshot of the form. Transition never mutates it.
type State struct {
	Status Status
	Values contact.Request
	// Errors holds per-field messages from the last rejected submit.
	Errors map[contact.Field]string
	// Error is the submission failure message shown with a retry prompt.
	Error string
	// FirstName is kept after success for the confirmation message.
	FirstName string
}

// New returns an empty form ready for input.
func New() State {
	return State{Status: StatusEditing}
}

// Restore rebuilds an editing form from values held by the browser.
func Restore(values contact.Request) State {
	return State{Status: StatusEditing, Values: values}
}

// Completed reports whether f holds a value that passes its check. It drives
// the progressive checkmarks beside each input.
func (s State) Completed(f contact.Field) bool {
	v := s.Values.Get(f)
	return v != "" && contact.FieldError(f, v) == ""
}

// FieldError returns the current message for f, if any.
func (s State) FieldError(f contact.Field) string {
	return s.Errors[f]
}

// Busy reports whether a submission is pending.
func (s State) Busy() bool {
	return s.Status == StatusSubmitting
}

func (s State) clone() State {
	out := s
	out.Errors = maps.Clone(s.Errors)
	return out
}
