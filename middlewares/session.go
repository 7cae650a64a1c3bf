package middlewares

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/plazakit/plaza/pkg/session"
)

// SessionConfig configures the session middleware.
type SessionConfig struct {
	Logger *slog.Logger
	// Guest controls whether a session is created for visitors without
	// one. When false, requests without a valid session proceed with no
	// session in context.
	Guest bool
}

// SessionOption configures SessionConfig.
type SessionOption func(*SessionConfig)

// WithSessionLogger sets the logger for session load failures.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(cfg *SessionConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithoutGuestSessions disables creating sessions for anonymous
// visitors. Crawlers then stop filling the session table.
func WithoutGuestSessions() SessionOption {
	return func(cfg *SessionConfig) {
		cfg.Guest = false
	}
}

// Session returns middleware that loads the visitor's session into the
// request context, creating a guest session when none exists. Dirty
// sessions are persisted after the handler runs; the cookie for a new
// session is written up front, before the handler can start the body.
func Session(manager *session.Manager, opts ...SessionOption) func(http.Handler) http.Handler {
	cfg := &SessionConfig{
		Logger: slog.Default(),
		Guest:  true,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess, err := manager.Load(ctx, r)
			if err != nil {
				// Stale or unknown token. Fall through to a fresh
				// session; anything else is a store failure worth
				// logging.
				if !errorsIsSessionGone(err) {
					cfg.Logger.ErrorContext(ctx, "session load failed", "error", err)
				}
				sess = nil
			}

			if sess == nil {
				if !cfg.Guest {
					next.ServeHTTP(w, r)
					return
				}
				sess, err = manager.Create(ctx, r)
				if err != nil {
					cfg.Logger.ErrorContext(ctx, "session create failed", "error", err)
					next.ServeHTTP(w, r)
					return
				}
				// Write the cookie now, while headers are still open.
				if err := manager.Save(ctx, w, sess); err != nil {
					cfg.Logger.ErrorContext(ctx, "session save failed", "error", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(ctx, sess)))

			if err := manager.Save(ctx, w, sess); err != nil {
				cfg.Logger.ErrorContext(ctx, "session save failed", "error", err)
			}
		})
	}
}

// GetSession extracts the session loaded by the Session middleware.
// Returns nil when the middleware is not mounted or declined to create
// a session.
func GetSession(r *http.Request) *session.Session {
	if s, ok := session.FromContext(r.Context()); ok {
		return s
	}
	return nil
}

func errorsIsSessionGone(err error) bool {
	return errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired)
}
