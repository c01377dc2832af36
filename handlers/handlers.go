package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"shelfsense/catalog"
	"shelfsense/models"
	"shelfsense/stream"
)

// Package-level dependencies, wired once from main. Both are safe for
// concurrent use.
var (
	productCatalog *catalog.Catalog
	streamManager  *stream.Manager
)

// Setup wires the handler dependencies. Must be called before routing.
func Setup(cat *catalog.Catalog, mgr *stream.Manager) {
	productCatalog = cat
	streamManager = mgr
}

// respondError maps domain errors to HTTP responses: AppError codes become
// 400s with the stable code on the wire, anything else is a 500.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"code":    appErr.Code,
			"message": appErr.Message,
		})
	}
	log.Printf("Unexpected handler error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Internal server error",
	})
}
