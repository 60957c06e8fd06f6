package model

import (
	"context"
	"time"
)

// User is an account record as stored by the user store.
type User struct {
	ID           int64
	LoginID      string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserStore resolves and creates accounts. It is the credential-lookup
// collaborator of the session core; password verification happens in the
// service layer against User.PasswordHash.
type UserStore interface {
	GetByLoginID(ctx context.Context, loginID string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
