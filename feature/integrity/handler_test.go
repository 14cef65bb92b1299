package integrity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"world-manager/core/store/storetest"
	"world-manager/feature/world/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, docs map[string]string) (*fiber.App, *Service, *storetest.Fake) {
	t.Helper()
	svc, _, fake := newTestService(t, docs)
	app := fiber.New()
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, svc, fake
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, svc, _ := setupTestApp(t, keepDocs())

	report := svc.world.LoadWorld(context.Background())
	require.False(t, report.Failed())

	req := httptest.NewRequest("GET", "/integrity", nil)
	// The combined check reconciles every kind, so give it extra time.
	resp, err := app.Test(req, 2000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	documents := body["documents"].(map[string]any)
	assert.Equal(t, "ok", documents["status"])

	tables := body["tables"].(map[string]any)
	assert.Equal(t, "ok", tables["status"])

	contents := body["contents"].(map[string]any)
	rooms := contents["rooms"].(map[string]any)
	assert.Equal(t, "ok", rooms["status"])
}

func TestHandleDocumentsCheck(t *testing.T) {
	app, _, _ := setupTestApp(t, keepDocs())

	req := httptest.NewRequest("GET", "/integrity/documents", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Len(t, body["documents"], 4)
}

func TestHandleDocumentsCheck_MissingDocument(t *testing.T) {
	docs := keepDocs()
	delete(docs, "archetypes.json")
	app, _, _ := setupTestApp(t, docs)

	req := httptest.NewRequest("GET", "/integrity/documents", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
}

func TestHandleTablesCheck(t *testing.T) {
	app, svc, _ := setupTestApp(t, keepDocs())

	report := svc.world.LoadWorld(context.Background())
	require.False(t, report.Failed())

	req := httptest.NewRequest("GET", "/integrity/tables", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Len(t, body["tables"], 5)
}

func TestHandleTablesCheck_StoreErrors(t *testing.T) {
	app, _, fake := setupTestApp(t, keepDocs())
	fake.Errs["DescribeTable"] = errors.New("store offline")

	req := httptest.NewRequest("GET", "/integrity/tables", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
}

func TestHandleContentsCheck(t *testing.T) {
	app, svc, _ := setupTestApp(t, keepDocs())

	report := svc.world.LoadWorld(context.Background())
	require.False(t, report.Failed())

	req := httptest.NewRequest("GET", "/integrity/contents", nil)
	resp, err := app.Test(req, 2000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 4)
	for kind, raw := range body {
		entry := raw.(map[string]any)
		assert.Equal(t, "ok", entry["status"], kind)
	}
}

func TestHandleContentsCheck_SingleKindDrift(t *testing.T) {
	app, svc, _ := setupTestApp(t, keepDocs())
	ctx := context.Background()

	report := svc.world.LoadWorld(ctx)
	require.False(t, report.Failed())

	// Drift must land before the first check; results are cached afterwards.
	require.NoError(t, svc.store.Put(ctx, "rooms", models.Room{
		RoomID: 1, Area: "keep", Title: "Corridor", Description: "A long hallway.",
	}))

	req := httptest.NewRequest("GET", "/integrity/contents?kind=rooms", nil)
	resp, err := app.Test(req, 2000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "rooms", body["kind"])
	assert.Len(t, body["results"], 2)

	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["mismatched"])
	assert.EqualValues(t, 2, summary["total"])
}

func TestHandleContentsCheck_UnknownKind(t *testing.T) {
	app, _, _ := setupTestApp(t, keepDocs())

	req := httptest.NewRequest("GET", "/integrity/contents?kind=wardrobes", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "unknown record kind")
}
