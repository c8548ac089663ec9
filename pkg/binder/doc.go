// Package binder decodes HTTP requests into typed request structs.
//
// Each constructor returns a func(r *http.Request, v any) error suitable for
// handler.WithBinders. Binders that do not apply to a request return
// ErrBinderNotApplicable so the next binder in the chain can run:
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, SubmitRequest](
//		binder.Signals(), // Datastar @post
//		binder.Form(),    // plain <form method="post"> fallback
//	))
package binder
