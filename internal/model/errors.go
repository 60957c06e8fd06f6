package model

import "errors"

// Token failures, ordered from least to most trusted input.
var (
	ErrMalformedToken   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token expired")
)

// Session protocol failures. Mismatch is surfaced distinctly from not-found
// since it is the stronger compromise signal.
var (
	ErrSessionNotFound      = errors.New("no session for subject")
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")
	ErrInvalidRefreshToken  = errors.New("refresh token is invalid")
)

// ErrUnauthorized is the single failure authorize exposes to callers; it
// folds all token-level detail so endpoints never leak why a token failed.
var ErrUnauthorized = errors.New("unauthorized")

// Account failures.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateLoginID   = errors.New("login id already in use")
	ErrDuplicateEmail     = errors.New("email already in use")
)
