package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plazakit/plaza/pkg/cookie"
	"github.com/plazakit/plaza/pkg/permission"
)

func newTestManager(opts ...Option) *Manager {
	return NewManager(NewMemoryStore(), cookie.New(), opts...)
}

// requestWithCookies copies the recorder's Set-Cookie headers onto a
// fresh request, simulating the browser's next visit.
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestManager_CreateSaveLoad(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("User-Agent", "test-agent")

	sess, err := m.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.IP != "192.168.1.1" {
		t.Errorf("IP = %q, want 192.168.1.1", sess.IP)
	}
	if sess.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q, want test-agent", sess.UserAgent)
	}
	if !sess.IsNew() {
		t.Error("created session should stay new until its cookie is written")
	}
	if sess.IsDirty() {
		t.Error("created session should be persisted already")
	}

	rec := httptest.NewRecorder()
	if err := m.Save(ctx, rec, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if sess.IsNew() {
		t.Error("Save should clear the new flag")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DefaultCookieName {
		t.Fatalf("expected one %s cookie, got %v", DefaultCookieName, cookies)
	}
	if cookies[0].Value != sess.Token {
		t.Error("cookie value should be the session token")
	}

	loaded, err := m.Load(ctx, requestWithCookies(rec))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || loaded.ID != sess.ID {
		t.Fatalf("Load = %+v, want session %s", loaded, sess.ID)
	}
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	m := newTestManager()

	sess, err := m.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess != nil {
		t.Errorf("Load without cookie = %+v, want nil", sess)
	}
}

func TestManager_LoadUnknownToken(t *testing.T) {
	m := newTestManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "stale-token"})

	if _, err := m.Load(context.Background(), req); err != ErrNotFound {
		t.Errorf("Load unknown token = %v, want ErrNotFound", err)
	}
}

func TestManager_SavePersistsDirty(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, err := m.Create(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := m.Save(ctx, rec, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sess.SetUser(42, permission.NewSet().Grant(permission.CommentsAdd))
	if err := m.Save(ctx, httptest.NewRecorder(), sess); err != nil {
		t.Fatalf("Save dirty: %v", err)
	}
	if sess.IsDirty() {
		t.Error("Save should clear the dirty flag")
	}

	loaded, err := m.Load(ctx, requestWithCookies(rec))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.UserID != 42 {
		t.Errorf("UserID = %d, want 42", loaded.UserID)
	}
	if !loaded.Can(permission.CommentsAdd) {
		t.Error("permissions should persist through the store")
	}
}

func TestManager_SaveNilSession(t *testing.T) {
	m := newTestManager()
	if err := m.Save(context.Background(), httptest.NewRecorder(), nil); err != nil {
		t.Errorf("Save(nil) = %v, want nil", err)
	}
}

func TestManager_Rotate(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, err := m.Create(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := m.Save(ctx, rec, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	oldToken := sess.Token

	rotateRec := httptest.NewRecorder()
	if err := m.Rotate(ctx, rotateRec, sess); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if sess.Token == oldToken {
		t.Error("Rotate should change the token")
	}

	// Old cookie no longer resolves.
	if _, err := m.Load(ctx, requestWithCookies(rec)); err != ErrNotFound {
		t.Errorf("Load with old token = %v, want ErrNotFound", err)
	}

	// The rewritten cookie does.
	loaded, err := m.Load(ctx, requestWithCookies(rotateRec))
	if err != nil {
		t.Fatalf("Load with rotated cookie: %v", err)
	}
	if loaded.ID != sess.ID {
		t.Errorf("rotated session ID = %q, want %q", loaded.ID, sess.ID)
	}
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, err := m.Create(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := m.Save(ctx, rec, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	delRec := httptest.NewRecorder()
	if err := m.Delete(ctx, delRec, sess); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	cookies := delRec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("Delete should expire the cookie, got %v", cookies)
	}

	if _, err := m.Load(ctx, requestWithCookies(rec)); err != ErrNotFound {
		t.Errorf("Load after delete = %v, want ErrNotFound", err)
	}
}

func TestManager_TouchOnLoad(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, cookie.New(), WithTouchInterval(time.Millisecond))
	ctx := context.Background()

	sess, err := m.Create(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := m.Save(ctx, rec, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Age the stored session past the touch interval.
	stale := time.Now().Add(-time.Minute)
	if err := store.Touch(ctx, sess.ID, stale); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	loaded, err := m.Load(ctx, requestWithCookies(rec))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.LastActiveAt.After(stale) {
		t.Error("Load should refresh LastActiveAt past the stale value")
	}
}

func TestManager_Purge(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, cookie.New())
	ctx := context.Background()

	dead := New("id-dead", "token-dead", time.Now().Add(-time.Hour))
	if err := store.Create(ctx, dead); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := m.Purge(ctx)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("Purge = %d, want 1", n)
	}
}

func TestManager_Options(t *testing.T) {
	m := NewManager(NewMemoryStore(), cookie.New(),
		WithCookieName("forum-sid"),
		WithTTL(time.Hour),
		WithTouchInterval(0),
	)

	if m.CookieName() != "forum-sid" {
		t.Errorf("cookieName = %q, want forum-sid", m.cookieName)
	}
	if m.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", m.ttl)
	}
	if m.touchEvery != 0 {
		t.Errorf("touchEvery = %v, want 0", m.touchEvery)
	}

	// Empty and non-positive options keep defaults.
	d := NewManager(NewMemoryStore(), cookie.New(), WithCookieName(""), WithTTL(-1))
	if d.cookieName != DefaultCookieName {
		t.Errorf("cookieName = %q, want default", d.cookieName)
	}
	if d.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want default", d.ttl)
	}
}
