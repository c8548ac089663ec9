package views

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/luckyblinds/site/svc/catalog"
	"github.com/luckyblinds/site/svc/contact"
	"github.com/luckyblinds/site/svc/contact/form"
)

// FieldView is one rendered form input.
type FieldView struct {
	Name         string
	Label        string
	Type         string
	Autocomplete string
	Placeholder  string
	Value        string
	Error        string
	Completed    bool
	Multiline    bool
	// Check is the browser-side test behind the checkmark.
	Check template.JS
	// ErrorSignal holds the field's current message in the signal store.
	ErrorSignal template.JS
	// Clear empties ErrorSignal when the visitor edits the field.
	Clear template.JS
}

// ContactFormParams feeds the quote/contact form region.
type ContactFormParams struct {
	FormID string
	Fields []FieldView
	// Error is the retry message after a failed submission.
	Error string
	// Notice is shown when a duplicate submission was dropped.
	Notice    string
	Busy      bool
	Submitted bool
	FirstName string
	// Signals seeds the Datastar signal store for the form.
	Signals string
	// Submit checks every field in the browser and posts only when all pass.
	Submit      template.JS
	ServiceArea string
}

type HomeParams struct {
	Catalog *catalog.Catalog
	Form    ContactFormParams
}

type QuickLookParams struct {
	Product catalog.Product
}

type ProductPageParams struct {
	Catalog *catalog.Catalog
	Product catalog.Product
}

var fieldMeta = map[contact.Field]FieldView{
	contact.FieldName:    {Label: "Full name", Type: "text", Autocomplete: "name", Placeholder: "Jane Doe"},
	contact.FieldPhone:   {Label: "Phone number", Type: "tel", Autocomplete: "tel", Placeholder: "(250) 555-0123"},
	contact.FieldEmail:   {Label: "Email address", Type: "email", Autocomplete: "email", Placeholder: "you@example.com"},
	contact.FieldMessage: {Label: "Tell us about your windows", Multiline: true, Placeholder: "Rooms, number of windows, styles you like..."},
}

// fieldChecks mirror contact.FieldError in the browser. The email pattern
// also refuses the dot and underscore forms the server rejects; anything it
// lets through is still checked on the server.
var fieldChecks = map[contact.Field]string{
	contact.FieldName:    `$name.trim() !== ''`,
	contact.FieldPhone:   `$phone.trim() !== ''`,
	contact.FieldEmail:   `/^[^\s@.]+(\.[^\s@.]+)*@[^\s@._]+(\.[^\s@._]+)+\.?$/.test($email.trim())`,
	contact.FieldMessage: `$message.trim() !== ''`,
}

// submitExpr sets each field's message from its check, then posts only if
// none is set and no request is pending.
var submitExpr = func() template.JS {
	var b strings.Builder
	names := make([]string, 0, len(contact.Fields))
	for _, f := range contact.Fields {
		msg, _ := json.Marshal(contact.FieldError(f, ""))
		fmt.Fprintf(&b, "$errors.%s = (%s) ? '' : %s; ", f, fieldChecks[f], msg)
		names = append(names, "$errors."+string(f))
	}
	fmt.Fprintf(&b, "!$submitting && !(%s) && @post('/contact')", strings.Join(names, " || "))
	return template.JS(b.String())
}()

// FieldErrors carries the per-field messages in the signal store. Every key
// is always present so expressions can read them.
type FieldErrors struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FormSignals is the Datastar signal store for the contact form.
type FormSignals struct {
	FormID     string      `json:"formId"`
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	Email      string      `json:"email"`
	Message    string      `json:"message"`
	Submitting bool        `json:"submitting"`
	Errors     FieldErrors `json:"errors"`
}

// SignalsFor returns the signal store matching s.
func SignalsFor(formID string, s form.State) FormSignals {
	return FormSignals{
		FormID:  formID,
		Name:    s.Values.Name,
		Phone:   s.Values.Phone,
		Email:   s.Values.Email,
		Message: s.Values.Message,
		Errors: FieldErrors{
			Name:    s.FieldError(contact.FieldName),
			Phone:   s.FieldError(contact.FieldPhone),
			Email:   s.FieldError(contact.FieldEmail),
			Message: s.FieldError(contact.FieldMessage),
		},
	}
}

// NewContactFormParams builds the form view model from a form state.
// serviceArea is the footnote under the form.
func NewContactFormParams(formID string, s form.State, notice, serviceArea string) ContactFormParams {
	p := ContactFormParams{
		FormID:      formID,
		Error:       s.Error,
		Notice:      notice,
		Busy:        s.Busy(),
		Submitted:   s.Status == form.StatusSubmitted,
		FirstName:   s.FirstName,
		Submit:      submitExpr,
		ServiceArea: serviceArea,
	}
	for _, f := range contact.Fields {
		fv := fieldMeta[f]
		fv.Name = string(f)
		fv.Value = s.Values.Get(f)
		fv.Error = s.FieldError(f)
		fv.Completed = s.Completed(f)
		fv.Check = template.JS(fieldChecks[f])
		fv.ErrorSignal = template.JS("$errors." + string(f))
		fv.Clear = template.JS("$errors." + string(f) + " = ''")
		p.Fields = append(p.Fields, fv)
	}
	b, err := json.Marshal(SignalsFor(formID, s))
	if err == nil {
		p.Signals = string(b)
	}
	return p
}
