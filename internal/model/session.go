package model

import "context"

// SessionStore persists the single current refresh-token value per identity.
// Implementations never iterate across identities; access is strictly by key.
type SessionStore interface {
	// Get returns the stored refresh token for the user key.
	// Returns ErrSessionNotFound when no record exists.
	Get(ctx context.Context, userKey string) (string, error)

	// Put upserts the record for the user key, overwriting any prior value.
	Put(ctx context.Context, userKey, refreshToken string) error

	// Delete removes the record. Deleting an absent key is a no-op.
	Delete(ctx context.Context, userKey string) error

	// Replace swaps old for new only if old is still the stored value.
	// Returns ErrSessionNotFound when no record exists and
	// ErrRefreshTokenMismatch when the stored value has moved on. At most one
	// concurrent Replace for a given stored value succeeds.
	Replace(ctx context.Context, userKey, old, new string) error
}
