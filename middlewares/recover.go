package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger            *slog.Logger // Logger for recovered panics
	Handler           func(w http.ResponseWriter, r *http.Request, pe *PanicError)
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverLogger sets the logger used for recovered panics.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithRecoverHandler sets the response written after a panic.
// The default responds 500 with a plain status text body.
func WithRecoverHandler(h func(w http.ResponseWriter, r *http.Request, pe *PanicError)) RecoverOption {
	return func(cfg *RecoverConfig) {
		if h != nil {
			cfg.Handler = h
		}
	}
}

// Recover returns middleware that recovers from panics, logs them, and
// writes an error response. http.ErrAbortHandler is re-raised so the
// server's connection-abort signal keeps working. Request ID is included
// in the log entry via RequestIDExtractor() if the logger is configured
// with it.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
		Logger:    slog.Default(),
		Handler: func(w http.ResponseWriter, r *http.Request, _ *PanicError) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var stack []byte
				if !cfg.DisablePrintStack {
					stack = make([]byte, cfg.StackSize)
					n := runtime.Stack(stack, false)
					stack = stack[:n]
				}

				if cfg.DisablePrintStack {
					cfg.Logger.ErrorContext(r.Context(), "panic recovered", "panic", rec)
				} else {
					cfg.Logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "stack", string(stack))
				}

				cfg.Handler(w, r, &PanicError{Value: rec, Stack: stack})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
