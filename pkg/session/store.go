package session

import (
	"context"
	"time"
)

// Store defines the interface for session persistence.
// Implementations handle storage-specific operations like
// database queries or in-memory lookups.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by its token.
	// Returns ErrNotFound if the session doesn't exist.
	// Returns ErrExpired if the session has expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves changes to an existing session, matched by ID so
	// token rotation works.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by its ID.
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes all sessions for a user ("sign out
	// everywhere"). Guest sessions (userID <= 0) are not addressable
	// this way.
	DeleteByUser(ctx context.Context, userID int64) error

	// Touch updates the LastActiveAt timestamp without writing the full
	// session.
	Touch(ctx context.Context, id string, lastActiveAt time.Time) error

	// DeleteExpired removes sessions past their expiry and reports how
	// many were removed. Driven on a schedule by the daemon.
	DeleteExpired(ctx context.Context) (int64, error)
}
