package handler

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tbessonov/shopauth/internal/logger"
	"github.com/tbessonov/shopauth/internal/model"
	"github.com/tbessonov/shopauth/internal/service"
)

// AuthService creates accounts and resolves credentials to a session.
type AuthService interface {
	SignUp(ctx context.Context, req service.SignUpRequest) (int64, error)
	Login(ctx context.Context, loginID, password string) (model.TokenPair, error)
}

// SessionService rotates and destroys sessions.
type SessionService interface {
	Reissue(ctx context.Context, accessToken, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

// Auth handles the /api/auth endpoints.
type Auth struct {
	authService    AuthService
	sessionService SessionService
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, sessionService SessionService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		sessionService: sessionService,
		logger:         logger,
	}
}

type signUpRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

type reissueRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SignUp creates an account.
func (h *Auth) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.LoginID == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "loginId and password are required")
	}

	userID, err := h.authService.SignUp(c.UserContext(), service.SignUpRequest{
		LoginID:  req.LoginID,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed", "login_id", req.LoginID, "error", err.Error())
		return handleError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"userId": userID})
}

// Login verifies credentials and returns a token pair.
func (h *Auth) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.LoginID == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "loginId and password are required")
	}

	pair, err := h.authService.Login(c.UserContext(), req.LoginID, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed", "login_id", req.LoginID, "error", err.Error())
		return handleError(err)
	}

	return c.JSON(pair)
}

// Reissue exchanges an access/refresh pair for a rotated one.
func (h *Auth) Reissue(c *fiber.Ctx) error {
	var req reissueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	pair, err := h.sessionService.Reissue(c.UserContext(), req.AccessToken, req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: reissue failed", "error", err.Error())
		return handleError(err)
	}

	return c.JSON(pair)
}

// Logout deletes the session of the presented bearer token.
func (h *Auth) Logout(c *fiber.Ctx) error {
	accessToken, ok := bearerToken(c)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing bearer token")
	}

	if err := h.sessionService.Logout(c.UserContext(), accessToken); err != nil {
		h.logger.Error("Auth handler: logout failed", "error", err.Error())
		return handleError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// bearerToken extracts the token from the Authorization header, stripping the
// Bearer prefix.
func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	return tokenString, tokenString != ""
}
