package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luckyblinds/site/pkg/clientip"
	"github.com/luckyblinds/site/pkg/config"
	"github.com/luckyblinds/site/pkg/email"
	"github.com/luckyblinds/site/pkg/httpserver"
	"github.com/luckyblinds/site/pkg/inflight"
	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/pkg/redis"
	"github.com/luckyblinds/site/svc/catalog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Runs the website until SIGINT or SIGTERM, then shuts down gracefully.

Missing or invalid email credentials stop the server at startup.
When REDIS_URL is set, duplicate form submissions are tracked in Redis so
the guard holds across instances; otherwise it is kept in memory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var cfg appConfig
		config.MustLoad(&cfg)
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg appConfig) error {
	log := newLogger(cfg.Env)

	sender, err := email.New(cfg.Email)
	if err != nil {
		return fmt.Errorf("email: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	d := deps{
		log:     log,
		catalog: cat,
		sender:  sender,
		form:    cfg.Form,
		contact: cfg.Contact,
		ip:      clientip.New(cfg.ClientIP),
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		d.guard = inflight.NewRedis(client)
		d.checks = append(d.checks, redis.Healthcheck(client))
		log.Info("in-flight guard backed by redis", logger.Component("inflight"))
	}

	router, err := newRouter(d)
	if err != nil {
		return err
	}

	log.Info("starting site",
		logger.Provider(cfg.Email.Provider),
		logger.Component("site"),
	)
	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}
