package memory

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/tbessonov/shopauth/internal/model"
)

var _ model.SessionStore = (*SessionStore)(nil)

// SessionStore keeps session records in process memory. Used by tests and
// single-instance development runs; records do not survive a restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

func (s *SessionStore) Get(_ context.Context, userKey string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.sessions[userKey]
	if !ok {
		return "", model.ErrSessionNotFound
	}
	return value, nil
}

func (s *SessionStore) Put(_ context.Context, userKey, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userKey] = refreshToken
	return nil
}

func (s *SessionStore) Delete(_ context.Context, userKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userKey)
	return nil
}

func (s *SessionStore) Replace(_ context.Context, userKey, old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[userKey]
	if !ok {
		return model.ErrSessionNotFound
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(old)) != 1 {
		return model.ErrRefreshTokenMismatch
	}

	s.sessions[userKey] = new
	return nil
}
