package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tbessonov/shopauth/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository stores one refresh-token row per identity in the
// refresh_token table, keyed by the string user key.
type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Get(ctx context.Context, userKey string) (string, error) {
	const query = `SELECT token_value FROM refresh_token WHERE user_key = $1`

	var value string
	err := r.db.QueryRow(ctx, query, userKey).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to get session record: %w", err)
	}
	return value, nil
}

func (r *SessionRepository) Put(ctx context.Context, userKey, refreshToken string) error {
	const query = `
        INSERT INTO refresh_token (user_key, token_value, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        ON CONFLICT (user_key)
        DO UPDATE SET token_value = EXCLUDED.token_value, updated_at = NOW()
    `

	if _, err := r.db.Exec(ctx, query, userKey, refreshToken); err != nil {
		return fmt.Errorf("failed to upsert session record: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, userKey string) error {
	const query = `DELETE FROM refresh_token WHERE user_key = $1`

	if _, err := r.db.Exec(ctx, query, userKey); err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}
	return nil
}

// Replace performs the rotation compare-and-swap in a single conditional
// UPDATE, so concurrent rotations of the same stored value race on the row
// lock and only one sees an affected row.
func (r *SessionRepository) Replace(ctx context.Context, userKey, old, new string) error {
	const query = `
        UPDATE refresh_token SET token_value = $3, updated_at = NOW()
        WHERE user_key = $1 AND token_value = $2
    `

	tag, err := r.db.Exec(ctx, query, userKey, old, new)
	if err != nil {
		return fmt.Errorf("failed to replace session record: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// No row swapped: distinguish a logged-out session from a stale token.
	if _, err := r.Get(ctx, userKey); err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return model.ErrSessionNotFound
		}
		return err
	}
	return model.ErrRefreshTokenMismatch
}
