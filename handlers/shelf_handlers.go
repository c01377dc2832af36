package handlers

import (
	"log"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"

	"shelfsense/config"
	"shelfsense/simulation"
)

// HandleGetShelfSnapshot generates a fresh snapshot for one shelf.
func HandleGetShelfSnapshot(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	shelfID := c.Params("shelfId")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	builder := simulation.NewSnapshotBuilder(productCatalog, rng)

	snapshot, err := builder.Build(shelfID, storeID, simulation.RandomShelfCount(rng))
	if err != nil {
		log.Printf("Error building snapshot for shelf %s: %v", shelfID, err)
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}

// HandleGetStoreAnalytics aggregates store-wide analytics across shelves.
func HandleGetStoreAnalytics(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	shelfCount := c.QueryInt("shelf_count", config.AppConfig.DefaultShelfCount)

	aggregator := simulation.NewStoreAggregator(productCatalog, nil)
	analytics, err := aggregator.BuildStore(storeID, shelfCount)
	if err != nil {
		log.Printf("Error building analytics for store %s: %v", storeID, err)
		return respondError(c, err)
	}
	return c.JSON(analytics)
}

// HandleGetShelfTimeSeries returns historical health samples for a shelf.
func HandleGetShelfTimeSeries(c *fiber.Ctx) error {
	shelfID := c.Params("shelfId")
	hours := c.QueryInt("hours", 24)

	builder := simulation.NewSnapshotBuilder(productCatalog, nil)
	points, err := builder.GenerateTimeSeries(shelfID, hours)
	if err != nil {
		log.Printf("Error building time series for shelf %s: %v", shelfID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"shelf_id": shelfID,
		"store_id": c.Params("storeId"),
		"hours":    hours,
		"points":   points,
	})
}
