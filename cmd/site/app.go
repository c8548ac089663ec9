package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/luckyblinds/site/handler"
	contactmod "github.com/luckyblinds/site/modules/contact"
	"github.com/luckyblinds/site/modules/site"
	"github.com/luckyblinds/site/pkg/clientip"
	"github.com/luckyblinds/site/pkg/email"
	"github.com/luckyblinds/site/pkg/httpserver"
	"github.com/luckyblinds/site/pkg/inflight"
	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/pkg/redis"
	"github.com/luckyblinds/site/pkg/requestid"
	"github.com/luckyblinds/site/svc/catalog"
	"github.com/luckyblinds/site/svc/contact"
	"github.com/luckyblinds/site/views"
)

// appConfig is everything serve reads from the environment.
type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	HTTP     httpserver.Config
	Email    email.Config
	Contact  contact.Config
	Form     contactmod.Config
	Redis    redis.Config
	ClientIP clientip.Config
}

// deps are the collaborators the router needs. Tests build them directly.
type deps struct {
	log     *slog.Logger
	catalog *catalog.Catalog
	sender  email.EmailSender
	guard   inflight.Guard
	form    contactmod.Config
	contact contact.Config
	checks  []func(context.Context) error
	ip      *clientip.Resolver
}

func newLogger(env string) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(env, "luckyblinds-site"),
		logger.WithContextValue("request_id", requestid.ContextKey()),
		logger.WithContextValue("client_ip", clientip.ContextKey()),
	)
}

// newRouter assembles the site and contact modules behind the shared
// middleware stack.
func newRouter(d deps) (http.Handler, error) {
	svc, err := contact.NewService(d.contact, d.sender, views.MailViews(), contact.WithLogger(d.log))
	if err != nil {
		return nil, err
	}

	errs := handler.NewErrorHandler(d.log, handler.ErrorHandlerConfig{
		ErrorPage:  views.ErrorPage,
		ErrorToast: views.ErrorToast,
	})

	pages := site.NewService(d.catalog, site.DefaultViews(),
		site.WithStatic(views.Static()),
		site.WithErrorHandler(errs),
		site.WithLogger(d.log),
	)

	formCfg := d.form
	formCfg.ServiceArea = d.catalog.ServiceArea()
	contactEndpoints := contactmod.NewService(formCfg, svc,
		contactmod.Views{
			Form: views.ContactForm,
			Page: func(p views.ContactFormParams) templ.Component {
				return views.Home(views.HomeParams{Catalog: d.catalog, Form: p})
			},
		},
		contactmod.WithGuard(d.guard),
		contactmod.WithErrorHandler(errs),
		contactmod.WithLogger(d.log),
	)

	ip := d.ip
	if ip == nil {
		ip = clientip.New(clientip.Config{})
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer, requestid.Middleware, ip.Middleware, middleware.CleanPath)

	r.NotFound(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, handler.WithErrorHandler[handler.Context, struct{}](errs)))

	r.Get("/healthz", httpserver.HealthCheck(d.log))
	r.Get("/readyz", httpserver.HealthCheck(d.log, d.checks...))
	r.Mount("/contact", contactEndpoints.Handle())
	r.Mount("/api/contact", contactEndpoints.HandleAPI())
	r.Mount("/", pages.Handle())

	return r, nil
}
