package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("attaches deadline to request context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		var deadline time.Time
		var ok bool
		handler := middlewares.Timeout(5 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline, ok = r.Context().Deadline()
		}))
		handler.ServeHTTP(rec, req)

		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
	})

	t.Run("context cancelled after timeout", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		var err error
		handler := middlewares.Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			err = r.Context().Err()
		}))
		handler.ServeHTTP(rec, req)

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("non-positive duration uses default", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		var ok bool
		handler := middlewares.Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
		}))
		handler.ServeHTTP(rec, req)

		require.True(t, ok)
	})
}
