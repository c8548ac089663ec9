package form

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmitInFlight rejects a submit while an earlier one is pending.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrAlreadySubmitted rejects any submit after a confirmed success.
	ErrAlreadySubmitted = errors.New("form: already submitted")
	ErrInvalidEvent     = errors.New("form: event cannot be nil")
)

// ErrNoTransitionAvailable indicates the event is not accepted in the current status.
type ErrNoTransitionAvailable struct {
	Status Status
	Event  string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("form: no transition from '%s' for event '%s'", e.Status, e.Event)
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}
