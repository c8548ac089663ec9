package binder

import "errors"

var (
	// ErrBinderNotApplicable tells the caller to try the next binder.
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToReadSignals  = errors.New("failed to read datastar signals")
	ErrInvalidTarget        = errors.New("bind target must be a non-nil pointer to struct")
)
