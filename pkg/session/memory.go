package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Suitable for tests and
// single-node deployments; sessions vanish on restart.
type MemoryStore struct {
	byToken map[string]*Session
	byID    map[string]string // id -> token
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byToken: make(map[string]*Session),
		byID:    make(map[string]string),
	}
}

// Create persists a new session.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if s.Token == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.byToken[s.Token] = s.clone()
	m.byID[s.ID] = s.Token
	return nil
}

// Get retrieves a session by its token.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	m.mu.RLock()
	s, ok := m.byToken[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return s.clone(), nil
}

// Update saves changes to an existing session, re-keying when the token
// was rotated.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	if s.Token == "" {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	oldToken, ok := m.byID[s.ID]
	if !ok {
		return ErrNotFound
	}
	if oldToken != s.Token {
		delete(m.byToken, oldToken)
	}

	m.byToken[s.Token] = s.clone()
	m.byID[s.ID] = s.Token
	return nil
}

// Delete removes a session by its ID.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.byID[id]
	if !ok {
		return nil
	}
	delete(m.byToken, token)
	delete(m.byID, id)
	return nil
}

// DeleteByUser removes all sessions for a user.
func (m *MemoryStore) DeleteByUser(_ context.Context, userID int64) error {
	if userID <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for token, s := range m.byToken {
		if s.UserID == userID {
			delete(m.byToken, token)
			delete(m.byID, s.ID)
		}
	}
	return nil
}

// Touch updates the LastActiveAt timestamp.
func (m *MemoryStore) Touch(_ context.Context, id string, lastActiveAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	m.byToken[token].LastActiveAt = lastActiveAt
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (m *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var removed int64
	for token, s := range m.byToken {
		if now.After(s.ExpiresAt) {
			delete(m.byToken, token)
			delete(m.byID, s.ID)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored sessions. Test helper.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byToken)
}

var _ Store = (*MemoryStore)(nil)
