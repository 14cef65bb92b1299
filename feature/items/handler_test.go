package items

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"world-manager/core/store/storetest"
	"world-manager/feature/world/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service, *storetest.Fake) {
	t.Helper()

	svc, fake := newTestService(t)
	seedRoom(t, svc, models.Room{RoomID: 2, Area: "keep", Title: "Vault"})
	require.NoError(t, svc.store.Put(context.Background(), svc.tables.Prototypes, torchPrototype()))

	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, svc, fake
}

func TestHandleSpawnItem(t *testing.T) {
	app, svc, fake := setupTestApp(t)

	req := httptest.NewRequest("POST", "/rooms/2/items", strings.NewReader(`{"PrototypeID": "torch-01"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var body struct {
		State string      `json:"state"`
		Item  models.Item `json:"item"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(StateAttached), body.State)
	assert.Equal(t, "torch-01", body.Item.PrototypeID)
	assert.Equal(t, "Torch", body.Item.Name)
	assert.True(t, fake.Has("items", body.Item.ItemID))
	assert.Equal(t, []string{body.Item.ItemID}, roomItems(t, svc, 2))
}

func TestHandleSpawnItem_UnknownPrototype(t *testing.T) {
	app, _, fake := setupTestApp(t)

	req := httptest.NewRequest("POST", "/rooms/2/items", strings.NewReader(`{"PrototypeID": "ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Zero(t, fake.Len("items"))
}

func TestHandleSpawnItem_UnknownRoom(t *testing.T) {
	app, _, fake := setupTestApp(t)

	req := httptest.NewRequest("POST", "/rooms/99/items", strings.NewReader(`{"PrototypeID": "torch-01"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(StateFailed), body["state"])
	assert.Zero(t, fake.Len("items"), "the item write was rolled back")
}

func TestHandleSpawnItem_BadRequests(t *testing.T) {
	app, _, _ := setupTestApp(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "RoomIDNotANumber", path: "/rooms/vault/items", body: `{"PrototypeID": "torch-01"}`},
		{name: "EmptyBody", path: "/rooms/2/items", body: ``},
		{name: "MissingPrototypeID", path: "/rooms/2/items", body: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
		})
	}
}

func TestHandleGetItem(t *testing.T) {
	app, svc, _ := setupTestApp(t)

	spawned, err := svc.SpawnIntoRoom(context.Background(), "torch-01", 2)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/items/"+spawned.Item.ItemID, nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var item models.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, spawned.Item.ItemID, item.ItemID)
	assert.Equal(t, "Torch", item.Name)
	assert.Equal(t, "0.5", item.Mass.String())
}

func TestHandleGetItem_NotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/items/no-such-item", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
