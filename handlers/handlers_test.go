package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfsense/catalog"
	"shelfsense/config"
	"shelfsense/handlers"
	"shelfsense/models"
	"shelfsense/routes"
	"shelfsense/stream"
)

func newTestApp() *fiber.App {
	config.Load()
	handlers.Setup(catalog.Default(), stream.NewManager(catalog.Default()))
	app := fiber.New()
	routes.SetupRoutes(app)
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestListProducts(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Products []models.Product `json:"products"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 15, body.Total)
	assert.Len(t, body.Products, 15)
}

func TestGetShelfSnapshot(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stores/store_1/shelves/shelf_1/snapshot", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var snap models.ShelfSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "shelf_1", snap.ShelfID)
	assert.Equal(t, "store_1", snap.StoreID)
	assert.Equal(t, len(snap.Detections), snap.Metrics.TotalProducts)
	assert.GreaterOrEqual(t, snap.Metrics.TotalProducts, 10)
	assert.LessOrEqual(t, snap.Metrics.TotalProducts, 24)
	assert.Equal(t, snap.Metrics.MisplacedCount+snap.Metrics.LowStockCount, snap.Condition.AlertCount)
}

func TestGetStoreAnalytics(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stores/store_1/analytics?shelf_count=5", nil), 15000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var analytics models.StoreAnalytics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&analytics))
	assert.Len(t, analytics.ShelfSnapshots, 5)

	b := analytics.Performance
	assert.Equal(t, 5, b.ExcellentShelves+b.GoodShelves+b.FairShelves+b.PoorShelves)
}

func TestGetStoreAnalyticsInvalidShelfCount(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stores/store_1/analytics?shelf_count=-1", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.CodeInvalidArgument, body["code"])
}

func TestGetShelfTimeSeries(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stores/store_1/shelves/shelf_1/timeseries?hours=6", nil), 15000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Points []models.TimeSeriesPoint `json:"points"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Points, 12)
}

func TestStartStreamInvalidWeights(t *testing.T) {
	app := newTestApp()

	payload := []byte(`{"camera_count":2,"duration_seconds":1,"frame_rate":30,"weights":{"detection":0.5,"alert":0.2,"status":0.1}}`)
	req := httptest.NewRequest("POST", "/api/v1/stream/start", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.CodeInvalidConfiguration, body["code"])

	// Validation failed before anything started.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/stream/metrics", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestStreamLifecycle(t *testing.T) {
	app := newTestApp()

	payload := []byte(`{"camera_count":1,"duration_seconds":5,"frame_rate":30}`)
	req := httptest.NewRequest("POST", "/api/v1/stream/start", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, 202, resp.StatusCode)

	// A second start while running conflicts.
	req = httptest.NewRequest("POST", "/api/v1/stream/start", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/stream/metrics", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/v1/stream/stop", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Once the run has wound down, stopping again reports nothing active.
	time.Sleep(300 * time.Millisecond)
	resp, err = app.Test(httptest.NewRequest("POST", "/api/v1/stream/stop", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestStreamLiveRequiresUpgrade(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stream/live", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
