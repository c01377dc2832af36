package routes

import (
	"shelfsense/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", handlers.HandleHealthCheck)

	api := app.Group("/api/v1")

	// --- Catalog Routes ---
	api.Get("/products", handlers.HandleListProducts)

	// --- Store & Shelf Routes ---
	stores := api.Group("/stores")
	stores.Get("/:storeId/analytics", handlers.HandleGetStoreAnalytics)
	stores.Get("/:storeId/shelves/:shelfId/snapshot", handlers.HandleGetShelfSnapshot)
	stores.Get("/:storeId/shelves/:shelfId/timeseries", handlers.HandleGetShelfTimeSeries)

	// --- Stream Routes ---
	streamGroup := api.Group("/stream")
	streamGroup.Post("/start", handlers.HandleStartStream)
	streamGroup.Post("/stop", handlers.HandleStopStream)
	streamGroup.Get("/metrics", handlers.HandleGetStreamMetrics)

	streamGroup.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	streamGroup.Get("/live", websocket.New(handlers.HandleStreamLive))
}
