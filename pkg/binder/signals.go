package binder

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// Signals binds the Datastar signal store sent with @get/@post actions.
// Signals are matched by json tags; extra signals are ignored. Requests that
// did not come from Datastar are not applicable. Bodies are capped at
// DefaultMaxJSONSize like JSON.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !isDataStar(r) {
			return ErrBinderNotApplicable
		}
		if r.Method != http.MethodGet && r.Body != nil {
			body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
			if err != nil {
				return fmt.Errorf("%w: read body: %v", ErrFailedToReadSignals, err)
			}
			if len(body) > DefaultMaxJSONSize {
				return fmt.Errorf("%w: body too large (max %d bytes)", ErrFailedToReadSignals, DefaultMaxJSONSize)
			}
			r.Body = io.NopCloser(bytesReader(body))
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToReadSignals, err)
		}
		return nil
	}
}

// isDataStar mirrors the handler package check; binder cannot import it.
func isDataStar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true" ||
		strings.Contains(r.Header.Get("Accept"), "text/event-stream") ||
		r.URL.Query().Has("datastar")
}
