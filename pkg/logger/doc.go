// Package logger builds the platform's structured slog loggers.
//
// Loggers write JSON to stdout. Context extractors attach
// request-scoped attributes (request id, client ip, user id) to every
// record logged through a context-aware call.
//
// # Basic Usage
//
//	log := logger.New(middlewares.RequestIDExtractor)
//	log.InfoContext(ctx, "discussion created",
//		slog.Int64("discussion_id", d.ID))
//
// The daemon raises the level when debug logging is configured:
//
//	level := slog.LevelInfo
//	if cfg.Bool("garden.debug", false) {
//		level = slog.LevelDebug
//	}
//	log := logger.NewLevel(level, middlewares.RequestIDExtractor())
//
// # Sentry
//
// NewWithSentry fans records out to stdout and Sentry. Errors open
// Sentry issues, warnings ship as searchable logs. With an empty DSN it
// degrades to stdout only:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//	}, middlewares.RequestIDExtractor)
//
// # No-op Logger
//
// Library packages that take an optional *slog.Logger default to
// logger.NewNope(), which discards everything.
package logger
