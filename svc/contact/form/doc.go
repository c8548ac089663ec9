// Package form models the contact form as an explicit state machine.
//
// A form is always in one of four statuses: editing, submitting, submitted or
// editing_with_error. Transition is a pure function from (State, Event) to
// the next State. Form wraps it in a mutex-guarded container that turns an
// accepted Submit into exactly one contact.Submitter call and rejects a
// second submit while the first is pending with ErrSubmitInFlight.
//
// Browsers hold the live state; the server rebuilds it per request with
// Restore and runs the same transitions.
package form
