package controllers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
)

// CollectionLister is satisfied by database.ListCollections.
type CollectionLister func(ctx context.Context) ([]string, error)

type HealthController struct {
	dbName      string
	collections CollectionLister
}

func NewHealthController(dbName string, collections CollectionLister) *HealthController {
	return &HealthController{dbName: dbName, collections: collections}
}

// Root godoc
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (hc *HealthController) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": "attendance-tracker"})
}

// Test godoc
// @Summary      Database connectivity check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /test [get]
func (hc *HealthController) Test(c *fiber.Ctx) error {
	names, err := hc.collections(c.UserContext())
	if err != nil {
		log.Println("❌ list collections:", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"backend":  "ok",
			"database": hc.dbName,
			"error":    err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"backend":     "ok",
		"database":    hc.dbName,
		"collections": names,
	})
}
