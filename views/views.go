// Package views renders the site's HTML and email bodies.
//
// Markup lives in embedded html/template files; every exported function
// returns a templ.Component so handlers and the mailer treat views the
// same way regardless of how they are produced.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/a-h/templ"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS

	//go:embed email/*.tmpl
	emailFS embed.FS

	//go:embed static
	staticFS embed.FS
)

var funcs = template.FuncMap{
	"nl2br": nl2br,
	"stars": func(n int) []struct{} { return make([]struct{}, max(n, 0)) },
	"join":  strings.Join,
	"year":  func() int { return time.Now().Year() },
}

var (
	pages     = template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	htmlMail  = template.Must(template.New("mail").Funcs(funcs).ParseFS(emailFS, "email/*.html.tmpl"))
	plainMail = texttemplate.Must(texttemplate.New("mail").ParseFS(emailFS, "email/*.txt.tmpl"))
)

// Static returns the stylesheet and other assets served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// nl2br escapes s and turns line breaks into <br>.
func nl2br(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}
