package health

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/plazakit/plaza/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc is the probe signature. db.Healthcheck and
// redis.Healthcheck return closures with this shape.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to probes.
type Checks map[string]CheckFunc

// Response is the aggregated result of a check run.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the status of a single probe.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures check execution.
type Option func(*config)

// WithTimeout caps the total time a check run may take.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used to report failing checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes all checks in parallel and returns the aggregated
// response. The error is ErrCheckFailed when any probe failed, joined
// with ErrCheckTimeout when the run deadline expired. The daemon calls
// this at startup to refuse to serve before its stores are reachable.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Response, error) {
	return run(ctx, checks, newConfig(opts...))
}

func run(ctx context.Context, checks Checks, cfg *config) (*Response, error) {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Check, len(checks))
	)

	for name, check := range checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()

			result := Check{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, check)
	}

	wg.Wait()

	resp := &Response{Status: StatusHealthy, Checks: results}
	for _, c := range results {
		if c.Status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
		}
	}
	if resp.Status == StatusHealthy {
		return resp, nil
	}

	err := ErrCheckFailed
	if ctx.Err() != nil {
		err = errors.Join(err, ErrCheckTimeout)
	}
	return resp, err
}
