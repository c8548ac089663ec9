// Package contact is the trusted boundary for contact/quote requests.
//
// A Request is normalized, validated against the server schema and, when
// valid, rendered into a notification email addressed to the business.
// Service.Submit never returns an error: callers receive a Result whose
// failure text is always FailureMessage, while the cause is logged.
//
//	svc, err := contact.NewService(cfg, sender, contact.MailViews{
//		HTML: views.ContactEmailHTML,
//		Text: views.ContactEmailText,
//	}, contact.WithLogger(log))
//	res := svc.Submit(ctx, contact.Request{Name: "Jane Doe", ...})
package contact
