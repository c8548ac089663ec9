// Package templates turns templ components into email body strings.
package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Render renders tpl into a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderPair renders the HTML and plain-text variants of one message.
// A nil text component yields an empty text body.
func RenderPair(ctx context.Context, html, text templ.Component) (htmlBody, textBody string, err error) {
	if htmlBody, err = Render(ctx, html); err != nil {
		return "", "", err
	}
	if text == nil {
		return htmlBody, "", nil
	}
	if textBody, err = Render(ctx, text); err != nil {
		return "", "", err
	}
	return htmlBody, textBody, nil
}
