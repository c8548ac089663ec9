// Package email sends transactional email through a provider-agnostic
// EmailSender interface.
//
// Three providers are available, chosen by Config.Provider:
//   - "smtp" (default): authenticated SMTP, implicit TLS on port 465 by default
//   - "postmark": the Postmark transactional API
//   - "dev": writes each message as HTML, text and JSON files to a directory
//
// Every provider validates SendEmailParams before doing any I/O and wraps
// delivery failures with ErrFailedToSendEmail:
//
//	sender, err := email.New(cfg)
//	if err != nil {
//		return err // ErrInvalidConfig
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "owner@example.com",
//		ReplyTo:  "customer@example.com",
//		Subject:  "New request",
//		BodyHTML: html,
//		BodyText: text,
//	})
//
// The templates subpackage renders templ components into body strings.
package email
