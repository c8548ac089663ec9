package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error hands err to the route's ErrorHandler instead of writing a body.
//
//	p, err := cat.Product(id)
//	if err != nil {
//		return handler.Error(errors.Join(handler.ErrNotFound, err))
//	}
func Error(err error) Response {
	if err == nil {
		err = ErrNilResponse
	}
	return errorResponse{err: err}
}
