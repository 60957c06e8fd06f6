package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/tbessonov/shopauth/internal/logger"
	"github.com/tbessonov/shopauth/internal/model"
	"github.com/tbessonov/shopauth/internal/security"
)

// Auth verifies credentials and manages account creation. It is the
// credential-verification collaborator in front of the session core: a
// successful Login hands the verified identity to Sessions.
type Auth struct {
	users    model.UserStore
	sessions *Sessions
	logger   *logger.Logger
}

func NewAuth(users model.UserStore, sessions *Sessions, logger *logger.Logger) *Auth {
	return &Auth{users: users, sessions: sessions, logger: logger}
}

// SignUpRequest carries the fields needed to create an account.
type SignUpRequest struct {
	LoginID  string
	Password string
	Email    string
	Phone    string
}

// SignUp creates a user with a hashed password, rejecting duplicate login
// IDs and emails. Returns the new user's numeric ID.
func (a *Auth) SignUp(ctx context.Context, req SignUpRequest) (int64, error) {
	exists, err := a.users.ExistsByLoginID(ctx, req.LoginID)
	if err != nil {
		return 0, fmt.Errorf("failed to check login id: %w", err)
	}
	if exists {
		return 0, model.ErrDuplicateLoginID
	}

	if req.Email != "" {
		exists, err = a.users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return 0, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return 0, model.ErrDuplicateEmail
		}
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		LoginID:      req.LoginID,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth: user signed up", "login_id", req.LoginID, "user_id", user.ID)

	return user.ID, nil
}

// Login resolves loginID+password to an identity and opens a session. An
// unknown login and a wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, loginID, password string) (model.TokenPair, error) {
	user, err := a.users.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, fmt.Errorf("failed to get user by login id: %w", err)
	}

	if err := security.ComparePassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			a.logger.Warn("Auth: failed login attempt", "login_id", loginID)
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	identity := model.Identity{
		UserID: strconv.FormatInt(user.ID, 10),
		Role:   user.Role,
	}

	return a.sessions.Login(ctx, identity)
}
