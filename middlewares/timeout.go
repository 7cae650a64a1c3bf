package middlewares

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that attaches a deadline to the request
// context. Handlers observe it through ctx.Done() and ctx.Err(); the
// handler goroutine is not forcibly terminated, so long-running work
// must check for cancellation itself.
//
// Non-positive durations fall back to DefaultTimeout.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
