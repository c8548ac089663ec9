package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/luckyblinds/site/handler"
	"github.com/luckyblinds/site/svc/contact"
)

// Home renders the full landing page.
func Home(p HomeParams) templ.Component { return page("home", p) }

// ContactForm renders the #contact-form region: the form, or the
// confirmation once submitted.
func ContactForm(p ContactFormParams) templ.Component { return page("contact_form", p) }

// QuickLook renders the #quick-look panel for one product.
func QuickLook(p QuickLookParams) templ.Component { return page("quick_look", p) }

// ProductPage renders a product on its own page for non-Datastar clients.
func ProductPage(p ProductPageParams) templ.Component { return page("product_page", p) }

func ErrorPage(p handler.ErrorPageParams) templ.Component   { return page("error_page", p) }
func ErrorToast(p handler.ErrorToastParams) templ.Component { return page("error_toast", p) }

// ContactEmailHTML is the HTML body of the notification email.
func ContactEmailHTML(p contact.MailParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return htmlMail.ExecuteTemplate(w, "contact.html.tmpl", p)
	})
}

// ContactEmailText is the plain-text body of the notification email.
func ContactEmailText(p contact.MailParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return plainMail.ExecuteTemplate(w, "contact.txt.tmpl", p)
	})
}

// MailViews wires the email bodies into the contact service.
func MailViews() contact.MailViews {
	return contact.MailViews{HTML: ContactEmailHTML, Text: ContactEmailText}
}
