package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/plazakit/plaza/pkg/clientip"
	"github.com/plazakit/plaza/pkg/cookie"
	"github.com/plazakit/plaza/pkg/id"
	"github.com/plazakit/plaza/pkg/logger"
)

// Default session configuration.
const (
	DefaultCookieName    = "plaza-sid"
	DefaultTTL           = 30 * 24 * time.Hour
	DefaultTouchInterval = 5 * time.Minute
)

// Manager handles session lifecycle and cookie handling. Create one at
// startup and share it; it is immutable after New.
type Manager struct {
	store      Store
	cookies    *cookie.Manager
	log        *slog.Logger
	cookieName string
	ttl        time.Duration
	touchEvery time.Duration
}

// Option configures the Manager.
type Option func(*Manager)

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

// WithTTL sets how long sessions live.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithTouchInterval sets how often Load refreshes LastActiveAt. Zero
// disables activity tracking.
func WithTouchInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.touchEvery = interval
	}
}

// WithLogger sets the logger for session events.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager creates a session Manager backed by the given store, with
// cookies written through the shared cookie manager.
func NewManager(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		cookies:    cookies,
		log:        logger.NewNope(),
		cookieName: DefaultCookieName,
		ttl:        DefaultTTL,
		touchEvery: DefaultTouchInterval,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Load loads an existing session from the request cookie.
// Returns nil, nil if no session cookie exists.
// Returns ErrNotFound if the session doesn't exist in the store.
// Returns ErrExpired if the session has expired.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.cookies.Get(r, m.cookieName)
	if err != nil || token == "" {
		return nil, nil // no session cookie
	}

	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if m.touchEvery > 0 && time.Since(sess.LastActiveAt) >= m.touchEvery {
		now := time.Now()
		if err := m.store.Touch(ctx, sess.ID, now); err != nil {
			m.log.WarnContext(ctx, "session touch failed",
				slog.String("session_id", sess.ID),
				slog.Any("error", err))
		} else {
			sess.LastActiveAt = now
		}
	}

	return sess, nil
}

// Create creates a new guest session with metadata from the request and
// persists it. The session stays marked new until Save writes its
// cookie.
func (m *Manager) Create(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("session: generate token: %w", err)
	}

	sess := New(id.NewULID(), token, time.Now().Add(m.ttl))
	sess.IP = clientip.GetIP(r)
	sess.UserAgent = r.UserAgent()

	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	sess.ClearDirty()

	return sess, nil
}

// Save persists pending changes and writes the session cookie for new
// sessions. Call it before the response body is written so the cookie
// header still fits.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return nil
	}

	if sess.IsDirty() {
		if err := m.store.Update(ctx, sess); err != nil {
			return err
		}
		sess.ClearDirty()
	}

	if sess.IsNew() {
		m.cookies.Set(w, m.cookieName, sess.Token, int(m.ttl/time.Second))
		sess.ClearNew()
	}

	return nil
}

// Rotate replaces the session token and rewrites the cookie. Called
// after sign-in so a token captured before authentication cannot be
// replayed into the authenticated session.
func (m *Manager) Rotate(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	oldToken := sess.Token
	newToken, err := generateToken()
	if err != nil {
		return fmt.Errorf("session: generate token: %w", err)
	}
	sess.Token = newToken
	sess.MarkDirty()

	if err := m.store.Update(ctx, sess); err != nil {
		sess.Token = oldToken // roll back on error
		return err
	}
	sess.ClearDirty()

	m.cookies.Set(w, m.cookieName, sess.Token, int(m.ttl/time.Second))
	return nil
}

// Delete removes the session from the store and expires its cookie.
func (m *Manager) Delete(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess != nil {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			return err
		}
	}
	m.cookies.Delete(w, m.cookieName)
	return nil
}

// Purge removes expired sessions from the store. The daemon runs this
// on a cron schedule.
func (m *Manager) Purge(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() Store {
	return m.store
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// generateToken creates a cryptographically secure random token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
