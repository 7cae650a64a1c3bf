package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists sessions in Postgres through a pgx pool. The schema
// lives in the sessions migration; permissions and attributes are jsonb
// columns handled by pgx's JSON codec.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres-backed session store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Create persists a new session.
func (p *PGStore) Create(ctx context.Context, s *Session) error {
	if s.Token == "" {
		return ErrInvalidToken
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO sessions (id, token, user_id, permissions, attributes, ip, user_agent, created_at, last_active_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Token, s.UserID, s.Permissions, s.Attributes, s.IP, s.UserAgent, s.CreatedAt, s.LastActiveAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("session: create: %w", err)
	}
	return nil
}

// Get retrieves a session by its token.
func (p *PGStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var s Session
	err := p.pool.QueryRow(ctx, `
		SELECT id, token, user_id, permissions, attributes, ip, user_agent, created_at, last_active_at, expires_at
		FROM sessions
		WHERE token = $1`,
		token,
	).Scan(&s.ID, &s.Token, &s.UserID, &s.Permissions, &s.Attributes, &s.IP, &s.UserAgent, &s.CreatedAt, &s.LastActiveAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: get: %w", err)
	}

	if s.IsExpired() {
		return nil, ErrExpired
	}
	return &s, nil
}

// Update saves changes to an existing session, matched by ID so token
// rotation works.
func (p *PGStore) Update(ctx context.Context, s *Session) error {
	if s.Token == "" {
		return ErrInvalidToken
	}

	ct, err := p.pool.Exec(ctx, `
		UPDATE sessions
		SET token = $2, user_id = $3, permissions = $4, attributes = $5, ip = $6, user_agent = $7, last_active_at = $8, expires_at = $9
		WHERE id = $1`,
		s.ID, s.Token, s.UserID, s.Permissions, s.Attributes, s.IP, s.UserAgent, s.LastActiveAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("session: update: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session by its ID.
func (p *PGStore) Delete(ctx context.Context, id string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// DeleteByUser removes all sessions for a user.
func (p *PGStore) DeleteByUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return nil
	}
	if _, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("session: delete by user: %w", err)
	}
	return nil
}

// Touch updates the LastActiveAt timestamp.
func (p *PGStore) Touch(ctx context.Context, id string, lastActiveAt time.Time) error {
	ct, err := p.pool.Exec(ctx, `UPDATE sessions SET last_active_at = $2 WHERE id = $1`, id, lastActiveAt)
	if err != nil {
		return fmt.Errorf("session: touch: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (p *PGStore) DeleteExpired(ctx context.Context) (int64, error) {
	ct, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("session: delete expired: %w", err)
	}
	return ct.RowsAffected(), nil
}

var _ Store = (*PGStore)(nil)
