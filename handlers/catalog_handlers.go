package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleListProducts returns the fixed product reference set.
func HandleListProducts(c *fiber.Ctx) error {
	products := productCatalog.List()
	return c.JSON(fiber.Map{
		"products": products,
		"total":    len(products),
	})
}

// HandleHealthCheck reports service liveness.
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":           "healthy",
		"stream_running":   streamManager.Running(),
		"catalog_products": productCatalog.Size(),
	})
}
