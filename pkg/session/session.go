package session

import (
	"errors"
	"time"

	"github.com/plazakit/plaza/pkg/permission"
)

// Session represents one visitor, signed in or not, with resolved
// permissions and arbitrary attributes.
type Session struct {
	CreatedAt    time.Time
	LastActiveAt time.Time
	ExpiresAt    time.Time

	Permissions *permission.Set // nil = no grants resolved yet
	Attributes  map[string]any  // Arbitrary session data
	ID          string          // Unique identifier (ULID)
	Token       string          // Cookie token (different from ID so leaked ids are harmless)
	IP          string          // Client IP address
	UserAgent   string          // Raw User-Agent header
	UserID      int64           // 0 = guest

	dirty bool // tracks if session needs saving
	isNew bool // tracks if session was just created
}

// New creates a new guest session with the given ID and token.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Attributes:   make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// IsAuthenticated returns true if the session belongs to a signed-in user.
func (s *Session) IsAuthenticated() bool {
	return s.UserID > 0
}

// SetUser binds the session to a user with their resolved permissions.
// Callers should rotate the token afterwards so a pre-login token can
// not be replayed into an authenticated session.
func (s *Session) SetUser(userID int64, perms *permission.Set) {
	s.UserID = userID
	s.Permissions = perms
	s.dirty = true
}

// ClearUser reverts the session to a guest, dropping the user binding
// and permissions but keeping attributes.
func (s *Session) ClearUser() {
	if s.UserID == 0 && s.Permissions == nil {
		return
	}
	s.UserID = 0
	s.Permissions = nil
	s.dirty = true
}

// Can reports whether the session's user holds a global permission.
// Guests and sessions without resolved permissions hold none.
func (s *Session) Can(name string) bool {
	return s.Permissions.Has(name)
}

// CanJunction reports whether the session's user holds a permission
// scoped to one junction row, e.g. a single category.
func (s *Session) CanJunction(junction string, id int64, name string) bool {
	return s.Permissions.HasJunction(junction, id, name)
}

// SetAttribute stores a value in the session.
// Marks the session as dirty for automatic saving.
func (s *Session) SetAttribute(key string, val any) {
	if s.Attributes == nil {
		s.Attributes = make(map[string]any)
	}
	s.Attributes[key] = val
	s.dirty = true
}

// GetAttribute retrieves a value from the session.
func (s *Session) GetAttribute(key string) (any, bool) {
	if s.Attributes == nil {
		return nil, false
	}
	val, ok := s.Attributes[key]
	return val, ok
}

// DeleteAttribute removes a value from the session.
// Marks the session as dirty only if the key existed.
func (s *Session) DeleteAttribute(key string) {
	if s.Attributes == nil {
		return
	}
	if _, exists := s.Attributes[key]; exists {
		delete(s.Attributes, key)
		s.dirty = true
	}
}

// IsDirty returns true if the session has unsaved changes.
func (s *Session) IsDirty() bool {
	return s.dirty
}

// ClearDirty marks the session as clean (saved).
// Called by the session manager after persisting changes.
func (s *Session) ClearDirty() {
	s.dirty = false
}

// MarkDirty marks the session as needing to be saved.
func (s *Session) MarkDirty() {
	s.dirty = true
}

// IsNew returns true if the session was just created and its cookie has
// not been written yet.
func (s *Session) IsNew() bool {
	return s.isNew
}

// ClearNew marks the session as no longer new.
// Called after the session cookie is first written.
func (s *Session) ClearNew() {
	s.isNew = false
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// clone returns a detached copy safe to hand across store boundaries.
// Attributes are copied; the permission set is shared because sets are
// read-only once built.
func (s *Session) clone() *Session {
	c := *s
	c.Attributes = make(map[string]any, len(s.Attributes))
	for k, v := range s.Attributes {
		c.Attributes[k] = v
	}
	c.dirty = false
	c.isNew = false
	return &c
}

// Attribute is a typed helper to retrieve session attributes with type
// safety. Returns an error if the key doesn't exist or type assertion
// fails.
func Attribute[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}

	val, ok := s.GetAttribute(key)
	if !ok {
		return zero, ErrNotFound
	}

	typed, ok := val.(T)
	if !ok {
		return zero, errors.New("session: type mismatch for key: " + key)
	}

	return typed, nil
}

// AttributeOr is a typed helper that returns a default value if the key
// doesn't exist or type assertion fails.
func AttributeOr[T any](s *Session, key string, defaultVal T) T {
	val, err := Attribute[T](s, key)
	if err != nil {
		return defaultVal
	}
	return val
}
