package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the patch applies to.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the patch is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component with its own patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

// Patch builds a TemplPatch for TemplMulti.
func Patch(c templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: c, Options: opts}
}

type templResponse struct {
	partial templ.Component
	full    templ.Component
	status  int
	options []TemplOption
	signals any
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElementTempl(t.partial, t.options...); err != nil {
			return err
		}
		if t.signals != nil {
			b, err := json.Marshal(t.signals)
			if err != nil {
				return err
			}
			return sse.PatchSignals(b)
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders c. Datastar requests receive it as a patch event.
func Templ(c templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: c, full: c, options: opts}
}

// TemplPartial sends partial to Datastar requests and full to everything
// else, so one handler serves both the enhanced and the plain-HTML form.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}

// TemplWithSignals is TemplPartial that also patches the Datastar signal
// store after the element patch. signals is ignored for plain requests.
func TemplWithSignals(partial, full templ.Component, signals any, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts, signals: signals}
}

// TemplStatus renders c as a full page with the given status code.
func TemplStatus(status int, c templ.Component) Response {
	return templResponse{partial: c, full: c, status: status}
}

type templMultiResponse struct {
	patches []TemplPatch
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// TemplMulti sends several patches in one response. Plain requests get the
// components concatenated in order.
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches}
}
