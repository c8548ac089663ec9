package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory bounds multipart parsing.
const DefaultMaxMemory = 1 << 20

// Form binds url-encoded or multipart form values into fields tagged
// `form:"name"`. Requests without a form body are not applicable, so Form
// can follow another binder in the same chain.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			return ErrBinderNotApplicable
		}

		mediaType, err := mediaType(r)
		if err != nil {
			return err
		}

		switch {
		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindValues(v, "form", r.PostForm, ErrFailedToParseForm)

		case strings.HasPrefix(mediaType, "multipart/form-data"):
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindValues(v, "form", r.MultipartForm.Value, ErrFailedToParseForm)
		}

		return ErrBinderNotApplicable
	}
}
