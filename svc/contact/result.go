package contact

import "context"

// FailureMessage is the only failure text callers ever see. Internal error
// detail stays in the server log.
const FailureMessage = "Failed to send email. Please try again later."

// Result is the outcome of one submission attempt.
type Result struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success reports a confirmed dispatch.
func Success() Result {
	return Result{Success: true}
}

// Failure reports a failed attempt with reason.
func Failure(reason string) Result {
	return Result{Success: false, Error: reason}
}

// Submitter accepts contact requests. Service implements it in-process and
// the client package implements it over HTTP.
type Submitter interface {
	Submit(ctx context.Context, req Request) Result
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, req Request) Result

func (f SubmitterFunc) Submit(ctx context.Context, req Request) Result {
	return f(ctx, req)
}
