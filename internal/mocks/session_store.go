package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SessionStore is a testify mock of model.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Get(ctx context.Context, userKey string) (string, error) {
	args := m.Called(ctx, userKey)
	return args.String(0), args.Error(1)
}

func (m *SessionStore) Put(ctx context.Context, userKey, refreshToken string) error {
	args := m.Called(ctx, userKey, refreshToken)
	return args.Error(0)
}

func (m *SessionStore) Delete(ctx context.Context, userKey string) error {
	args := m.Called(ctx, userKey)
	return args.Error(0)
}

func (m *SessionStore) Replace(ctx context.Context, userKey, old, new string) error {
	args := m.Called(ctx, userKey, old, new)
	return args.Error(0)
}
