package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/mocks"
	"github.com/spec-kit/account-service/internal/observability"
	"github.com/spec-kit/account-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	accountService := service.NewAccountService(cfg, service.AccountDependencies{
		Repo:       mocks.NewAccountRepo(),
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler("account-service", "test", nil, nil),
		Accounts: handlers.NewAccountsHandler(accountService),
		Auth:     handlers.NewAuthHandler(accountService),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func doRequestList(t *testing.T, app *fiber.App, path string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func registerAlice(t *testing.T, app *fiber.App) {
	t.Helper()
	resp, body := doRequest(t, app, http.MethodPost, "/users", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "StrongPass1!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "User created successfully", body["message"])
}

func TestRegisterLoginScenario(t *testing.T) {
	app := newTestApp(t)

	registerAlice(t, app)

	// second registration with the same email conflicts
	resp, body := doRequest(t, app, http.MethodPost, "/users", map[string]string{
		"name":     "Alicia",
		"email":    "alice@example.com",
		"password": "OtherPass2@",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errBody["message"], "already exists")

	// wrong password fails with the ambiguous 401
	resp, body = doRequest(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "failed", body["status"])

	// unknown email is indistinguishable from wrong password
	resp, body = doRequest(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "StrongPass1!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "failed", body["status"])

	// correct credentials return the id assigned at registration
	resp, body = doRequest(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "StrongPass1!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(1), body["user_id"])
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/users", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "WEAK_PASSWORD", errBody["code"])
}

func TestListUsers(t *testing.T) {
	app := newTestApp(t)

	t.Run("empty store returns empty array", func(t *testing.T) {
		resp, list := doRequestList(t, app, "/users?limit=10&offset=0")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, list)
	})

	t.Run("non-integer pagination rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/users?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("negative pagination rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/users?offset=-1", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("registered accounts are listed without digests", func(t *testing.T) {
		registerAlice(t, app)

		resp, list := doRequestList(t, app, "/users")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list, 1)
		assert.Equal(t, float64(1), list[0]["id"])
		assert.Equal(t, "Alice", list[0]["name"])
		assert.Equal(t, "alice@example.com", list[0]["email"])
		assert.NotContains(t, list[0], "password")
		assert.NotContains(t, list[0], "password_hash")
	})
}

func TestGetUser(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)

	resp, body := doRequest(t, app, http.MethodGet, "/user/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Alice", body["name"])

	resp, _ = doRequest(t, app, http.MethodGet, "/user/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateUser(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)

	t.Run("missing field rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPut, "/user/1", map[string]string{"name": "Alicia"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown id rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPut, "/user/999", map[string]string{
			"name":  "Ghost",
			"email": "ghost@example.com",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("full update succeeds", func(t *testing.T) {
		resp, body := doRequest(t, app, http.MethodPut, "/user/1", map[string]string{
			"name":  "Alicia",
			"email": "alicia@example.com",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "User updated successfully", body["message"])

		resp, body = doRequest(t, app, http.MethodGet, "/user/1", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alicia@example.com", body["email"])
	})
}

func TestDeleteUser(t *testing.T) {
	app := newTestApp(t)
	registerAlice(t, app)

	resp, body := doRequest(t, app, http.MethodDelete, "/user/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User deleted successfully", body["message"])

	resp, _ = doRequest(t, app, http.MethodGet, "/user/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/user/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchUsers(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodPost, "/users", map[string]string{
		"name":     "Francesca",
		"email":    "francesca@example.com",
		"password": "StrongPass1!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "User created successfully", body["message"])

	t.Run("case-insensitive substring match", func(t *testing.T) {
		resp, list := doRequestList(t, app, "/search?name=fran")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list, 1)
		assert.Equal(t, "Francesca", list[0]["name"])
	})

	t.Run("no match returns empty array", func(t *testing.T) {
		resp, list := doRequestList(t, app, "/search?name=zzz")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, list)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/search", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHomeBanner(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "User Management System", string(raw))
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}
