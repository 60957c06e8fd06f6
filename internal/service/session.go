package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/tbessonov/shopauth/internal/logger"
	"github.com/tbessonov/shopauth/internal/model"
	"github.com/tbessonov/shopauth/internal/token"
)

// Sessions orchestrates the token lifecycle: issuing a pair at login,
// rotating it at reissue, destroying server-side state at logout and gating
// requests through Authorize. The session store holds the single current
// refresh-token value per identity; everything else is stateless.
type Sessions struct {
	codec     *token.Codec
	validator *token.Validator
	store     model.SessionStore
	logger    *logger.Logger
	accessTTL time.Duration
}

func NewSessions(
	codec *token.Codec,
	validator *token.Validator,
	store model.SessionStore,
	logger *logger.Logger,
	accessTTL time.Duration,
) *Sessions {
	return &Sessions{
		codec:     codec,
		validator: validator,
		store:     store,
		logger:    logger,
		accessTTL: accessTTL,
	}
}

func (s *Sessions) pair(access, refresh string) model.TokenPair {
	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    model.TokenTypeBearer,
		ExpiresIn:    s.accessTTL.Milliseconds(),
	}
}

// Login issues a fresh token pair for an already-verified identity and
// overwrites any prior session record, invalidating previously issued
// refresh tokens for that identity.
func (s *Sessions) Login(ctx context.Context, identity model.Identity) (model.TokenPair, error) {
	access, err := s.codec.Issue(identity.UserID, identity.Role, s.accessTTL)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := token.NewRefreshToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.store.Put(ctx, identity.UserID, refresh); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to persist session record: %w", err)
	}

	s.logger.Info("Sessions: login issued token pair", "subject", identity.UserID)

	return s.pair(access, refresh), nil
}

// Reissue trades a (possibly expired) access token plus the currently valid
// refresh token for a fresh pair, rotating the stored refresh value. Only the
// access token's signature matters here; an expired access token is exactly
// the expected trigger. For a given stored refresh value at most one
// concurrent Reissue succeeds; the rest fail with ErrRefreshTokenMismatch.
func (s *Sessions) Reissue(ctx context.Context, accessToken, refreshToken string) (model.TokenPair, error) {
	if refreshToken == "" {
		return model.TokenPair{}, model.ErrInvalidRefreshToken
	}

	claims, err := s.codec.Parse(accessToken)
	if err != nil {
		return model.TokenPair{}, err
	}
	subject := claims.Subject

	stored, err := s.store.Get(ctx, subject)
	if err != nil {
		return model.TokenPair{}, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		s.logger.Warn("Sessions: reissue presented a stale refresh token", "subject", subject)
		return model.TokenPair{}, model.ErrRefreshTokenMismatch
	}

	newAccess, err := s.codec.Issue(subject, claims.Role, s.accessTTL)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	newRefresh, err := token.NewRefreshToken()
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// The swap is conditional on the presented value still being stored, so
	// concurrent reissues of the same value produce exactly one winner.
	if err := s.store.Replace(ctx, subject, refreshToken, newRefresh); err != nil {
		return model.TokenPair{}, err
	}

	s.logger.Info("Sessions: rotated refresh token", "subject", subject)

	return s.pair(newAccess, newRefresh), nil
}

// Logout deletes the session record for the token's subject. Only the
// signature is checked: logging out with an expired access token must work,
// since the goal is destroying server-side state, not authorizing anything.
// Logging out twice, or with no active session, succeeds silently.
func (s *Sessions) Logout(ctx context.Context, accessToken string) error {
	subject, err := s.validator.Subject(accessToken)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, subject); err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}

	s.logger.Info("Sessions: logged out", "subject", subject)

	return nil
}

// Authorize is the authentication gate every protected endpoint calls first.
// It is fully stateless and never touches the session store. All token-level
// failures collapse into ErrUnauthorized so callers receive no cryptographic
// detail.
func (s *Sessions) Authorize(_ context.Context, accessToken string) (model.Identity, error) {
	if !s.validator.Valid(accessToken) {
		return model.Identity{}, model.ErrUnauthorized
	}

	claims, err := s.codec.Parse(accessToken)
	if err != nil {
		return model.Identity{}, model.ErrUnauthorized
	}

	return model.Identity{UserID: claims.Subject, Role: claims.Role}, nil
}
