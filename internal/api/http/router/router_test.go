package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gofiber/fiber/v2"

	"github.com/tbessonov/shopauth/internal/api/http/router"
	"github.com/tbessonov/shopauth/internal/mocks"
	"github.com/tbessonov/shopauth/internal/model"
	"github.com/tbessonov/shopauth/internal/repository/memory"
	"github.com/tbessonov/shopauth/internal/security"
	"github.com/tbessonov/shopauth/internal/service"
	"github.com/tbessonov/shopauth/internal/testutil"
	"github.com/tbessonov/shopauth/internal/token"
)

type testEnv struct {
	app   *fiber.App
	users *mocks.UserStore
	store *memory.SessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	codec, err := token.NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	l := testutil.MakeNoopLogger()
	users := &mocks.UserStore{}
	store := memory.NewSessionStore()

	sessions := service.NewSessions(codec, token.NewValidator(codec), store, l, 30*time.Minute)
	auth := service.NewAuth(users, sessions, l)

	app := router.New(auth, sessions, sessions, l).Register()

	return &testEnv{app: app, users: users, store: store}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodePair(t *testing.T, resp *http.Response) model.TokenPair {
	t.Helper()

	var pair model.TokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	return pair
}

// expectUser registers the mock expectations for a user that can log in with
// the given password.
func (e *testEnv) expectUser(t *testing.T, loginID, password string) model.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	require.NoError(t, err)

	user := model.User{
		ID:           42,
		LoginID:      loginID,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	e.users.On("GetByLoginID", mock.Anything, loginID).Return(user, nil)
	return user
}

func TestRouter_SignUp(t *testing.T) {
	t.Run("creates user", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("ExistsByLoginID", mock.Anything, "alice").Return(false, nil)
		env.users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		env.users.On("Create", mock.Anything, mock.Anything).Return(model.User{ID: 7}, nil)

		resp := env.request(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"loginId":  "alice",
			"password": "secret",
			"email":    "alice@example.com",
		}, nil)

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(7), body["userId"])
	})

	t.Run("duplicate login id", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("ExistsByLoginID", mock.Anything, "alice").Return(true, nil)

		resp := env.request(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("missing password", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.request(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"loginId": "alice",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_Login(t *testing.T) {
	t.Run("returns token pair", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		resp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		pair := decodePair(t, resp)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, model.TokenTypeBearer, pair.TokenType)
		assert.Equal(t, int64(30*time.Minute/time.Millisecond), pair.ExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		resp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "wrong",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetByLoginID", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)

		resp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "ghost",
			"password": "secret",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRouter_Reissue(t *testing.T) {
	t.Run("rotates pair", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		loginResp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)
		pair := decodePair(t, loginResp)

		resp := env.request(t, http.MethodPost, "/api/auth/reissue", map[string]string{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		}, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		rotated := decodePair(t, resp)
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		// the old refresh token is dead after rotation
		replay := env.request(t, http.MethodPost, "/api/auth/reissue", map[string]string{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, replay.StatusCode)
	})

	t.Run("unknown refresh token", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		loginResp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)
		pair := decodePair(t, loginResp)

		resp := env.request(t, http.MethodPost, "/api/auth/reissue", map[string]string{
			"accessToken":  pair.AccessToken,
			"refreshToken": "bogus-refresh-token",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		loginResp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)
		pair := decodePair(t, loginResp)

		resp := env.request(t, http.MethodPost, "/api/auth/reissue", map[string]string{
			"accessToken": pair.AccessToken,
		}, nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_Logout(t *testing.T) {
	t.Run("deletes session", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		loginResp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)
		pair := decodePair(t, loginResp)

		resp := env.request(t, http.MethodPost, "/api/auth/logout", nil, map[string]string{
			fiber.HeaderAuthorization: "Bearer " + pair.AccessToken,
		})
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		// reissue with the revoked pair fails
		reissue := env.request(t, http.MethodPost, "/api/auth/reissue", map[string]string{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, reissue.StatusCode)

		// logout is idempotent
		again := env.request(t, http.MethodPost, "/api/auth/logout", nil, map[string]string{
			fiber.HeaderAuthorization: "Bearer " + pair.AccessToken,
		})
		assert.Equal(t, http.StatusNoContent, again.StatusCode)
	})

	t.Run("missing bearer token", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.request(t, http.MethodPost, "/api/auth/logout", nil, nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.request(t, http.MethodPost, "/api/auth/logout", nil, map[string]string{
			fiber.HeaderAuthorization: "Bearer not-a-token",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	t.Run("me returns identity", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		loginResp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)
		pair := decodePair(t, loginResp)

		resp := env.request(t, http.MethodGet, "/api/users/me", nil, map[string]string{
			fiber.HeaderAuthorization: "Bearer " + pair.AccessToken,
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "42", body["userId"])
		assert.Equal(t, string(model.RoleUser), body["role"])
	})

	t.Run("no token", func(t *testing.T) {
		env := newTestEnv(t)

		resp := env.request(t, http.MethodGet, "/api/users/me", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("tampered token", func(t *testing.T) {
		env := newTestEnv(t)
		env.expectUser(t, "alice", "secret")

		loginResp := env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"loginId":  "alice",
			"password": "secret",
		}, nil)
		pair := decodePair(t, loginResp)

		resp := env.request(t, http.MethodGet, "/api/users/me", nil, map[string]string{
			fiber.HeaderAuthorization: fmt.Sprintf("Bearer %sx", pair.AccessToken),
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
