package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/pkg/requestid"
)

const genericErrorMessage = "Something went wrong. Please try again."

// ErrorPageParams feeds the full-page error view.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the Datastar toast view.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig selects the error views.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

// messages shown to visitors; internal details only go to the log.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "We couldn't read that request. Please refresh the page and try again.",
	http.StatusNotFound:            "We couldn't find that page.",
	http.StatusMethodNotAllowed:    "That action isn't supported here.",
	http.StatusConflict:            "Your request is already being processed.",
	http.StatusUnprocessableEntity: "Please check the highlighted fields.",
}

// ClassifyError maps err to a status code, a visitor-safe message and a log level.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{StatusCode: http.StatusInternalServerError}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		info.StatusCode = http.StatusUnprocessableEntity
	}

	info.Message = statusMessages[info.StatusCode]
	if info.Message == "" {
		info.Message = genericErrorMessage
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	} else {
		info.Type = "error"
		info.LogLevel = slog.LevelError
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs the error and renders
// a toast for Datastar requests or an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		id := requestid.FromContext(r.Context())
		info := ClassifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(id),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		if IsDataStar(r) {
			renderToast(ctx, cfg, info, id, log)
			return
		}
		renderPage(ctx, cfg, info, id, log)
	}
}

func renderToast(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, id string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast view configured", logger.RequestID(id))
		return
	}
	resp := Templ(cfg.ErrorToast(ErrorToastParams{
		Message:   info.Message,
		Type:      info.Type,
		RequestID: id,
	}), WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))

	// SSE responses keep status 200; the toast carries the error.
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error toast", logger.RequestID(id), logger.Error(err))
	}
}

func renderPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, id string, log *slog.Logger) {
	w := ctx.ResponseWriter()
	if cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return
	}
	resp := TemplStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  id,
		RetryURL:   ctx.Request().URL.Path,
	}))
	if err := resp.Render(w, ctx.Request()); err != nil {
		log.Error("failed to render error page", logger.RequestID(id), logger.Error(err))
	}
}
