// Package logger builds slog loggers for the site and provides the attribute
// helpers used across packages so log keys stay consistent.
//
// Production uses JSON output at INFO level, development uses text at DEBUG:
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "luckyblinds-site"),
//		logger.WithContextValue("request_id", requestid.ContextKey()))
//	log.InfoContext(ctx, "contact request sent", logger.Component("contact"))
package logger
