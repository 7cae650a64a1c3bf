package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plazakit/plaza/pkg/config"
	"github.com/plazakit/plaza/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func issued(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func requestWith(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	return r
}

func TestPlainCookies(t *testing.T) {
	m := cookie.New()

	t.Run("get missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := m.Get(r, "missing"); !errors.Is(err, cookie.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set and get round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "theme", "dark", 3600)

		c := issued(t, w)
		if c.Name != "theme" || c.Value != "dark" {
			t.Errorf("cookie = %s=%s, want theme=dark", c.Name, c.Value)
		}
		if c.MaxAge != 3600 {
			t.Errorf("MaxAge = %d, want 3600", c.MaxAge)
		}

		val, err := m.Get(requestWith(c), "theme")
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if val != "dark" {
			t.Errorf("Get() = %q, want %q", val, "dark")
		}
	})

	t.Run("delete expires the cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Delete(w, "theme")

		if c := issued(t, w); c.MaxAge != -1 {
			t.Errorf("MaxAge = %d, want -1", c.MaxAge)
		}
	})
}

func TestSignedCookies(t *testing.T) {
	t.Run("no secret returns error", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		if err := m.SetSigned(w, "uid", "data", 3600); !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("SetSigned() error = %v, want ErrNoSecret", err)
		}

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := m.GetSigned(r, "uid"); !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("GetSigned() error = %v, want ErrNoSecret", err)
		}
	})

	t.Run("short secret is ignored", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret("short"))
		w := httptest.NewRecorder()

		if err := m.SetSigned(w, "uid", "data", 3600); !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("SetSigned() error = %v, want ErrNoSecret", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))

		w := httptest.NewRecorder()
		if err := m.SetSigned(w, "uid", "user123", 3600); err != nil {
			t.Fatalf("SetSigned() error: %v", err)
		}

		val, err := m.GetSigned(requestWith(issued(t, w)), "uid")
		if err != nil {
			t.Fatalf("GetSigned() error: %v", err)
		}
		if val != "user123" {
			t.Errorf("GetSigned() = %q, want %q", val, "user123")
		}
	})

	t.Run("tampered value fails", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))

		w := httptest.NewRecorder()
		_ = m.SetSigned(w, "uid", "user123", 3600)

		c := issued(t, w)
		c.Value = "dGFtcGVyZWQ.invalid"

		if _, err := m.GetSigned(requestWith(c), "uid"); !errors.Is(err, cookie.ErrBadSig) {
			t.Errorf("GetSigned() error = %v, want ErrBadSig", err)
		}
	})
}

func TestEncryptedCookies(t *testing.T) {
	t.Run("round trip hides plaintext", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))

		w := httptest.NewRecorder()
		if err := m.SetEncrypted(w, "prefs", "confidential", 3600); err != nil {
			t.Fatalf("SetEncrypted() error: %v", err)
		}

		c := issued(t, w)
		if c.Value == "confidential" {
			t.Error("cookie value should be encrypted")
		}

		val, err := m.GetEncrypted(requestWith(c), "prefs")
		if err != nil {
			t.Fatalf("GetEncrypted() error: %v", err)
		}
		if val != "confidential" {
			t.Errorf("GetEncrypted() = %q, want %q", val, "confidential")
		}
	})

	t.Run("tampered value fails", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))

		w := httptest.NewRecorder()
		_ = m.SetEncrypted(w, "prefs", "confidential", 3600)

		c := issued(t, w)
		c.Value = "tamperedvalue"

		if _, err := m.GetEncrypted(requestWith(c), "prefs"); !errors.Is(err, cookie.ErrDecrypt) {
			t.Errorf("GetEncrypted() error = %v, want ErrDecrypt", err)
		}
	})

	t.Run("missing cookie returns not found", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		if _, err := m.GetEncrypted(r, "missing"); !errors.Is(err, cookie.ErrNotFound) {
			t.Errorf("GetEncrypted() error = %v, want ErrNotFound", err)
		}
	})
}

func TestFlash(t *testing.T) {
	t.Run("read deletes the value", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))

		w := httptest.NewRecorder()
		msg := map[string]string{"type": "success", "text": "Saved!"}
		if err := m.SetFlash(w, "msg", msg); err != nil {
			t.Fatalf("SetFlash() error: %v", err)
		}

		c := issued(t, w)
		if c.Name != "flash_msg" {
			t.Errorf("cookie name = %q, want %q", c.Name, "flash_msg")
		}

		w2 := httptest.NewRecorder()
		var dest map[string]string
		if err := m.Flash(w2, requestWith(c), "msg", &dest); err != nil {
			t.Fatalf("Flash() error: %v", err)
		}
		if dest["type"] != "success" || dest["text"] != "Saved!" {
			t.Errorf("Flash() = %v, want %v", dest, msg)
		}

		if del := issued(t, w2); del.MaxAge != -1 {
			t.Errorf("flash cookie MaxAge = %d, want -1", del.MaxAge)
		}
	})

	t.Run("missing flash returns not found", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		var dest string
		if err := m.Flash(w, r, "missing", &dest); !errors.Is(err, cookie.ErrNotFound) {
			t.Errorf("Flash() error = %v, want ErrNotFound", err)
		}
	})
}

func TestCookieAttributes(t *testing.T) {
	m := cookie.New(
		cookie.WithDomain("example.com"),
		cookie.WithPath("/forum"),
		cookie.WithSecure(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)

	w := httptest.NewRecorder()
	m.Set(w, "test", "value", 3600)

	c := issued(t, w)
	if c.Domain != "example.com" {
		t.Errorf("Domain = %q, want %q", c.Domain, "example.com")
	}
	if c.Path != "/forum" {
		t.Errorf("Path = %q, want %q", c.Path, "/forum")
	}
	if !c.Secure {
		t.Error("Secure = false, want true")
	}
	if !c.HttpOnly {
		t.Error("HttpOnly = false, want true")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite = %v, want %v", c.SameSite, http.SameSiteStrictMode)
	}
}

func TestAppCookies(t *testing.T) {
	t.Run("prefixed names", func(t *testing.T) {
		m := cookie.New(cookie.WithPrefix("Lounge"))
		if got := m.AppName("TransientKey"); got != "Lounge-app-TransientKey" {
			t.Errorf("AppName() = %q, want %q", got, "Lounge-app-TransientKey")
		}
	})

	t.Run("default prefix", func(t *testing.T) {
		m := cookie.New()
		if got := m.AppName("x"); got != "plaza-app-x" {
			t.Errorf("AppName() = %q, want %q", got, "plaza-app-x")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		m := cookie.New(cookie.WithPrefix("site"))

		w := httptest.NewRecorder()
		m.AppSet(w, "NoMobile", "1", 3600)

		c := issued(t, w)
		if c.Name != "site-app-NoMobile" {
			t.Errorf("cookie name = %q, want %q", c.Name, "site-app-NoMobile")
		}

		val, err := m.AppGet(requestWith(c), "NoMobile")
		if err != nil {
			t.Fatalf("AppGet() error: %v", err)
		}
		if val != "1" {
			t.Errorf("AppGet() = %q, want %q", val, "1")
		}

		w2 := httptest.NewRecorder()
		m.AppDelete(w2, "NoMobile")
		if del := issued(t, w2); del.Name != "site-app-NoMobile" || del.MaxAge != -1 {
			t.Errorf("delete cookie = %s MaxAge=%d, want site-app-NoMobile MaxAge=-1", del.Name, del.MaxAge)
		}
	})
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.New(config.WithDefaults(map[string]any{
		"garden": map[string]any{
			"cookie": map[string]any{
				"name":   "MySite",
				"domain": ".example.com",
				"path":   "/forum",
				"secure": true,
				"salt":   testSecret,
			},
		},
	}))
	if err != nil {
		t.Fatalf("config.New() error: %v", err)
	}

	m := cookie.FromConfig(cfg)

	if got := m.AppName("x"); got != "MySite-app-x" {
		t.Errorf("AppName() = %q, want %q", got, "MySite-app-x")
	}

	w := httptest.NewRecorder()
	m.Set(w, "test", "v", 60)

	c := issued(t, w)
	if c.Domain != "example.com" && c.Domain != ".example.com" {
		t.Errorf("Domain = %q, want example.com", c.Domain)
	}
	if c.Path != "/forum" {
		t.Errorf("Path = %q, want /forum", c.Path)
	}
	if !c.Secure {
		t.Error("Secure = false, want true")
	}

	// The configured salt is long enough to enable signing.
	if err := m.SetSigned(httptest.NewRecorder(), "uid", "1", 60); err != nil {
		t.Errorf("SetSigned() error: %v", err)
	}
}
