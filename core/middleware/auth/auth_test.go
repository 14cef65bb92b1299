package auth_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"world-manager/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: key}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestNew_NoKeyConfigured(t *testing.T) {
	app := setupTestApp("")

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestNew_ValidKey(t *testing.T) {
	app := setupTestApp("secret")

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(auth.Header, "secret")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestNew_RejectsBadKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "Missing", key: ""},
		{name: "Wrong", key: "guess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp("secret")

			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.key != "" {
				req.Header.Set(auth.Header, tt.key)
			}
			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Contains(t, body["error"], "API key")
		})
	}
}
