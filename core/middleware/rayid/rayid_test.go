package rayid_test

import (
	"net/http/httptest"
	"testing"

	"world-manager/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp() (*fiber.App, *string) {
	app := fiber.New()
	app.Use(rayid.New())

	var seen string
	app.Get("/ping", func(c *fiber.Ctx) error {
		if id, ok := c.Locals(rayid.LocalsKey).(string); ok {
			seen = id
		}
		return c.SendString("pong")
	})

	return app, &seen
}

func TestNew_GeneratesID(t *testing.T) {
	app, seen := setupTestApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	header := resp.Header.Get(rayid.Header)
	require.NotEmpty(t, header)

	_, err = uuid.Parse(header)
	assert.NoError(t, err)

	assert.Equal(t, header, *seen)
}

func TestNew_KeepsCallerID(t *testing.T) {
	app, seen := setupTestApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(rayid.Header, "ray-from-upstream")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, "ray-from-upstream", resp.Header.Get(rayid.Header))
	assert.Equal(t, "ray-from-upstream", *seen)
}

func TestNew_UniquePerRequest(t *testing.T) {
	app, _ := setupTestApp()

	first, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	second, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)

	assert.NotEqual(t, first.Header.Get(rayid.Header), second.Header.Get(rayid.Header))
}
