// Package site serves the marketing pages: the home page, product quick
// looks and the embedded static assets.
package site

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/luckyblinds/site/handler"
	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/svc/catalog"
	"github.com/luckyblinds/site/svc/contact/form"
	"github.com/luckyblinds/site/views"
)

// Views renders the site pages.
type Views struct {
	Home        func(views.HomeParams) templ.Component
	QuickLook   func(views.QuickLookParams) templ.Component
	ProductPage func(views.ProductPageParams) templ.Component
}

// DefaultViews returns the embedded views.
func DefaultViews() Views {
	return Views{
		Home:        views.Home,
		QuickLook:   views.QuickLook,
		ProductPage: views.ProductPage,
	}
}

// Service serves the pages for one catalog.
type Service struct {
	catalog      *catalog.Catalog
	views        Views
	static       fs.FS
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStatic serves assets from fsys under /static/.
func WithStatic(fsys fs.FS) Option {
	return func(s *Service) { s.static = fsys }
}

// WithErrorHandler sets the handler for missing products and render errors.
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

func NewService(cat *catalog.Catalog, v Views, opts ...Option) *Service {
	s := &Service{
		catalog: cat,
		views:   v,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})
	}
	return s
}

// Handle returns the router. Mount it at the site root.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.home,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/products/{id}", handler.Wrap(s.product,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	if s.static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(s.static)))
	}

	return r
}

// NewFormParams returns the view model of an empty contact form with a
// fresh form ID.
func (s *Service) NewFormParams() views.ContactFormParams {
	return views.NewContactFormParams(uuid.NewString(), form.New(), "", s.catalog.ServiceArea())
}

func (s *Service) home(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.Home(views.HomeParams{
		Catalog: s.catalog,
		Form:    s.NewFormParams(),
	}))
}

func (s *Service) product(ctx handler.Context, _ struct{}) handler.Response {
	p, err := s.catalog.Product(chi.URLParam(ctx.Request(), "id"))
	if err != nil {
		return handler.Error(errors.Join(handler.ErrNotFound, err))
	}
	return handler.TemplPartial(
		s.views.QuickLook(views.QuickLookParams{Product: p}),
		s.views.ProductPage(views.ProductPageParams{Catalog: s.catalog, Product: p}),
		handler.WithTarget("#quick-look"),
	)
}
