package server

import (
	"testing"

	"sensei/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	t.Parallel()

	t.Run("creates user and returns token", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		var authResp AuthResponse
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", SignupRequest{
			Username:    "gopher_one",
			DisplayName: "Gopher One",
			Email:       "Gopher@Example.com",
			Password:    "Sup3r$ecurePass!",
		}, &authResp)

		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, authResp.Token)
		assert.Equal(t, "gopher_one", authResp.User.Username)
		assert.Equal(t, "Gopher One", authResp.User.DisplayName)
		assert.Equal(t, "gopher@example.com", authResp.User.Email)
		assert.Equal(t, models.RoleStudent, authResp.User.Role)
	})

	t.Run("display name defaults to username", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		var authResp AuthResponse
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", SignupRequest{
			Username: "plain_gopher",
			Email:    "plain@example.com",
			Password: "Sup3r$ecurePass!",
		}, &authResp)

		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "plain_gopher", authResp.User.DisplayName)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)
		signupUser(t, app, "first_user", "dup@example.com")

		var errResp models.ErrorResponse
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", SignupRequest{
			Username: "second_user",
			Email:    "dup@example.com",
			Password: "Sup3r$ecurePass!",
		}, &errResp)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Email already registered", errResp.Error)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)
		signupUser(t, app, "taken_name", "one@example.com")

		var errResp models.ErrorResponse
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", SignupRequest{
			Username: "taken_name",
			Email:    "two@example.com",
			Password: "Sup3r$ecurePass!",
		}, &errResp)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", SignupRequest{
			Username: "weak_pass",
			Email:    "weak@example.com",
			Password: "short",
		}, nil)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/signup", "", SignupRequest{
			Username: "_bad",
			Email:    "bad@example.com",
			Password: "Sup3r$ecurePass!",
		}, nil)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns token for valid credentials", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)
		signupUser(t, app, "login_user", "login@example.com")

		var authResp AuthResponse
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", LoginRequest{
			Email:    "login@example.com",
			Password: "Sup3r$ecurePass!",
		}, &authResp)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, authResp.Token)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)
		signupUser(t, app, "wrong_pass", "wrong@example.com")

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", LoginRequest{
			Email:    "wrong@example.com",
			Password: "Not-The-Right-0ne!",
		}, nil)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", LoginRequest{
			Email:    "nobody@example.com",
			Password: "Sup3r$ecurePass!",
		}, nil)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("revoked token is rejected afterwards", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)
		token, _ := signupUser(t, app, "leaver", "leaver@example.com")

		// Token works before logout.
		resp := doJSON(t, app, fiber.MethodPost, "/api/community/posts", token, CreatePostRequest{
			Title:    "Before logout",
			Content:  "still authenticated",
			Category: models.CategoryOther,
		}, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, fiber.MethodPost, "/api/auth/logout", token, nil, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, fiber.MethodPost, "/api/community/posts", token, CreatePostRequest{
			Title:    "After logout",
			Content:  "should be rejected",
			Category: models.CategoryOther,
		}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("requires a token", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/logout", "", nil, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	t.Run("rejects missing token", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		resp := doJSON(t, app, fiber.MethodPost, "/api/community/posts", "", CreatePostRequest{
			Title: "anonymous", Content: "nope", Category: models.CategoryOther,
		}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		t.Parallel()
		_, app := newTestServer(t)

		resp := doJSON(t, app, fiber.MethodPost, "/api/community/posts", "not-a-jwt", CreatePostRequest{
			Title: "anonymous", Content: "nope", Category: models.CategoryOther,
		}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		t.Parallel()
		s, app := newTestServer(t)

		other := *s.config
		other.JWTSecret = "a-completely-different-secret-0123456789"
		rogue := &Server{config: &other}
		token, err := rogue.generateToken(1)
		require.NoError(t, err)

		resp := doJSON(t, app, fiber.MethodPost, "/api/community/posts", token, CreatePostRequest{
			Title: "forged", Content: "nope", Category: models.CategoryOther,
		}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
