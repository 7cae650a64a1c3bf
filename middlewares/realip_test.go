package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/middlewares"
)

func TestRealIP(t *testing.T) {
	t.Parallel()

	t.Run("rewrites remote addr from forwarded header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:9999"
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		rec := httptest.NewRecorder()

		var seen string
		handler := middlewares.RealIP()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.RemoteAddr
		}))
		handler.ServeHTTP(rec, req)

		require.Equal(t, "203.0.113.7", seen)
	})

	t.Run("keeps connection addr without headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.9:1234"
		rec := httptest.NewRecorder()

		var seen string
		handler := middlewares.RealIP()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.RemoteAddr
		}))
		handler.ServeHTTP(rec, req)

		require.Equal(t, "192.0.2.9", seen)
	})
}
