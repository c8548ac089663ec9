package contact

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/luckyblinds/site/pkg/email"
)

// Field names a contact request field. Values match the JSON keys.
type Field string

const (
	FieldName    Field = "name"
	FieldPhone   Field = "phone"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists every field in display order.
var Fields = []Field{FieldName, FieldPhone, FieldEmail, FieldMessage}

// Request is a single contact/quote request. It is never stored.
type Request struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Phone   string `json:"phone" form:"phone" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Message string `json:"message" form:"message" validate:"required"`
}

// Get returns the value of f.
func (r Request) Get(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldPhone:
		return r.Phone
	case FieldEmail:
		return r.Email
	case FieldMessage:
		return r.Message
	}
	return ""
}

// With returns a copy of r with f set to value.
func (r Request) With(f Field, value string) Request {
	switch f {
	case FieldName:
		r.Name = value
	case FieldPhone:
		r.Phone = value
	case FieldEmail:
		r.Email = value
	case FieldMessage:
		r.Message = value
	}
	return r
}

// Normalize returns r in NFC form with surrounding whitespace removed.
// Single-line fields also have inner whitespace runs collapsed to one space.
func (r Request) Normalize() Request {
	return Request{
		Name:    singleLine(r.Name),
		Phone:   singleLine(r.Phone),
		Email:   singleLine(r.Email),
		Message: strings.TrimSpace(norm.NFC.String(r.Message)),
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// FieldError returns the user-facing message for an invalid value of f,
// or "" when the value passes. Values are checked after trimming.
func FieldError(f Field, value string) string {
	value = strings.TrimSpace(value)
	switch f {
	case FieldName:
		if value == "" {
			return "Name is required"
		}
	case FieldPhone:
		if value == "" {
			return "Phone number is required"
		}
	case FieldEmail:
		if !validEmail(value) {
			return "Invalid email address"
		}
	case FieldMessage:
		if value == "" {
			return "Message is required"
		}
	}
	return ""
}

// addressRule is the same "email" rule the Request schema applies, so a
// value FieldError accepts is never rejected by Service.Validate.
var addressRule = validator.New()

func validEmail(value string) bool {
	return email.ValidAddress(value) && addressRule.Var(value, "email") == nil
}

// Check runs FieldError over every field and returns the failures keyed by
// field. A nil map means the request is valid.
func Check(r Request) map[Field]string {
	var errs map[Field]string
	for _, f := range Fields {
		if msg := FieldError(f, r.Get(f)); msg != "" {
			if errs == nil {
				errs = make(map[Field]string, len(Fields))
			}
			errs[f] = msg
		}
	}
	return errs
}

// FormatPhone renders a North American number as (###) ###-####.
// Ten digits, or eleven with a leading 1, are formatted; anything else is
// returned trimmed and unchanged.
func FormatPhone(raw string) string {
	digits := make([]rune, 0, len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return strings.TrimSpace(raw)
	}
	d := string(digits)
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}

// FirstName returns the first word of name, used in confirmations.
func FirstName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
