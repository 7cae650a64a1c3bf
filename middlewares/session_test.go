package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/middlewares"
	"github.com/plazakit/plaza/pkg/cookie"
	"github.com/plazakit/plaza/pkg/session"
)

func newSessionManager() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), cookie.New())
}

func TestSessionMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("creates guest session and sets cookie", func(t *testing.T) {
		t.Parallel()

		manager := newSessionManager()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler := middlewares.Session(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := middlewares.GetSession(r)
			require.NotNil(t, sess)
			require.False(t, sess.IsAuthenticated())
		}))
		handler.ServeHTTP(rec, req)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, manager.CookieName(), cookies[0].Name)
		require.NotEmpty(t, cookies[0].Value)
	})

	t.Run("loads existing session", func(t *testing.T) {
		t.Parallel()

		manager := newSessionManager()

		// First visit creates the session.
		first := httptest.NewRecorder()
		middlewares.Session(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middlewares.GetSession(r).SetAttribute("seen", true)
		})).ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

		// Second visit presents the cookie.
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range first.Result().Cookies() {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()

		middlewares.Session(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := middlewares.GetSession(r)
			require.NotNil(t, sess)
			require.True(t, session.AttributeOr(sess, "seen", false))
		})).ServeHTTP(rec, req)

		// No new cookie on the second visit.
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("stale token replaced with fresh session", func(t *testing.T) {
		t.Parallel()

		manager := newSessionManager()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: manager.CookieName(), Value: "gone"})
		rec := httptest.NewRecorder()

		middlewares.Session(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NotNil(t, middlewares.GetSession(r))
		})).ServeHTTP(rec, req)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.NotEqual(t, "gone", cookies[0].Value)
	})

	t.Run("guest sessions disabled", func(t *testing.T) {
		t.Parallel()

		manager := newSessionManager()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		middlewares.Session(manager, middlewares.WithoutGuestSessions())(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Nil(t, middlewares.GetSession(r))
			}),
		).ServeHTTP(rec, req)

		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("dirty session persisted after handler", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		manager := session.NewManager(store, cookie.New())

		first := httptest.NewRecorder()
		middlewares.Session(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middlewares.GetSession(r).SetAttribute("count", 1)
		})).ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

		token := first.Result().Cookies()[0].Value
		stored, err := store.Get(context.Background(), token)
		require.NoError(t, err)

		count, ok := stored.GetAttribute("count")
		require.True(t, ok)
		require.Equal(t, 1, count)
	})
}
