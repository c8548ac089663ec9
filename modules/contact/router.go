// Package contact serves the contact form endpoints: the Datastar and
// plain-HTML form (Handle) and the JSON surface (HandleAPI).
package contact

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/luckyblinds/site/handler"
	"github.com/luckyblinds/site/pkg/binder"
	"github.com/luckyblinds/site/pkg/inflight"
	"github.com/luckyblinds/site/pkg/logger"
	contactsvc "github.com/luckyblinds/site/svc/contact"
	"github.com/luckyblinds/site/views"
)

// Config controls the form endpoint.
type Config struct {
	// InFlightTTL bounds how long a form ID stays locked if a submission
	// never finishes. It should exceed the worst-case send time.
	InFlightTTL time.Duration `env:"CONTACT_INFLIGHT_TTL" envDefault:"2m"`

	// ServiceArea is the footnote under the form. Set from the catalog.
	ServiceArea string
}

// Views renders the form region and the page that contains it.
type Views struct {
	Form func(views.ContactFormParams) templ.Component
	Page func(views.ContactFormParams) templ.Component
}

// Service serves the contact endpoints.
type Service struct {
	cfg          Config
	submitter    contactsvc.Submitter
	guard        inflight.Guard
	views        Views
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithGuard replaces the default in-memory in-flight guard.
func WithGuard(g inflight.Guard) Option {
	return func(s *Service) {
		if g != nil {
			s.guard = g
		}
	}
}

// WithErrorHandler sets the handler for bind and render errors on /contact.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService wires the endpoints to submitter.
func NewService(cfg Config, submitter contactsvc.Submitter, v Views, opts ...Option) *Service {
	if cfg.InFlightTTL <= 0 {
		cfg.InFlightTTL = 2 * time.Minute
	}
	s := &Service{
		cfg:       cfg,
		submitter: submitter,
		guard:     inflight.NewMemory(),
		views:     v,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})
	}
	s.log = s.log.With(logger.Component("contact_handler"))
	return s
}

// Handle returns the form endpoint. Mount it at /contact.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	// Datastar posts its signals as JSON; browsers without JS post the form.
	r.Post("/", handler.Wrap(s.submitForm,
		handler.WithBinders[handler.Context, FormRequest](
			binder.Signals(),
			binder.Form(),
		),
		handler.WithErrorHandler[handler.Context, FormRequest](s.errorHandler),
	))

	return r
}

// HandleAPI returns the JSON endpoint. Mount it at /api/contact.
func (s *Service) HandleAPI() http.Handler {
	r := chi.NewRouter()

	r.Post("/", handler.Wrap(s.submitAPI,
		handler.WithBinders[handler.Context, contactsvc.Request](binder.JSON()),
		handler.WithErrorHandler[handler.Context, contactsvc.Request](s.apiError),
	))

	return r
}
