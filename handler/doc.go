// Package handler turns typed functions into http.HandlerFunc values.
//
// A HandlerFunc receives a Context and a request struct populated by
// binders, and returns a Response that renders itself. Responses adapt to
// the caller: Datastar requests get server-sent patch events, everything
// else gets plain HTML or JSON.
//
//	func submit(ctx handler.Context, req SubmitRequest) handler.Response {
//		return handler.TemplPartial(views.ContactForm(p), views.Home(page),
//			handler.WithTarget("#contact-form"))
//	}
//
//	r.Post("/contact", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, SubmitRequest](binder.Signals(), binder.Form()),
//		handler.WithErrorHandler[handler.Context, SubmitRequest](errHandler),
//	))
package handler
