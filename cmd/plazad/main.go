// Command plazad runs the platform HTTP daemon: health probes, theme
// variable endpoints, the record join API, and reverse proxying of
// legacy paths, with cookie-token sessions loaded on every request.
//
// Infrastructure settings (listen address, database, Redis, Sentry)
// come from the environment; platform settings come from the dotted-key
// configuration file plus PLAZA_* environment overrides.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/plazakit/plaza/middlewares"
	"github.com/plazakit/plaza/pkg/config"
	"github.com/plazakit/plaza/pkg/logger"
)

type infraConfig struct {
	Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`

	// Optional backing stores. Without a database the daemon keeps
	// sessions in memory and serves no record API; without Redis the
	// record cache is in-process.
	DatabaseURL string `env:"DATABASE_CONN_URL"`
	RedisURL    string `env:"REDIS_URL"`

	Sentry logger.SentryConfig
}

func main() {
	configPath := flag.String("config", "config.yaml", "platform configuration file")
	localesDir := flag.String("locales", "", "directory of translation definition files")
	flag.Parse()

	if err := run(*configPath, *localesDir); err != nil {
		slog.Error("daemon failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(configPath, localesDir string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var infra infraConfig
	if err := config.Bind(&infra); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg, infra.Sentry).With(slog.String("instance", uuid.NewString()))

	app, err := newApp(ctx, cfg, infra, log, localesDir)
	if err != nil {
		return err
	}
	defer app.close()

	srv := &http.Server{
		Addr:              infra.Addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), infra.ShutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range app.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			log.Error("shutdown hook failed", slog.String("error", err.Error()))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Info("shutdown completed")
	return nil
}

// loadConfig builds the platform configuration: defaults, then the
// file when present, then PLAZA_* environment overrides.
func loadConfig(path string) (*config.Config, error) {
	opts := []config.Option{
		config.WithDefaults(map[string]any{
			"garden.title":                 "Plaza",
			"garden.locale":                "en",
			"garden.url":                   "http://localhost:8080",
			"garden.session.ttl":           "720h",
			"garden.session.purgeschedule": "@every 15m",
			"garden.cookie.name":           "plaza",
		}),
	}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, config.WithYAMLFile(path))
	}
	opts = append(opts, config.WithEnv("PLAZA"))

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, sentry logger.SentryConfig) *slog.Logger {
	extractors := []logger.ContextExtractor{middlewares.RequestIDExtractor()}
	if sentry.DSN != "" {
		return logger.NewWithSentry(sentry, extractors...)
	}
	level := slog.LevelInfo
	if cfg.Bool("garden.debug", false) {
		level = slog.LevelDebug
	}
	return logger.NewLevel(level, extractors...)
}
