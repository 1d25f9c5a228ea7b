package routes

import "github.com/gofiber/fiber/v2"

// Route เช็คว่า API และ database ทำงานอยู่
func healthRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.Root)
	app.Get("/test", h.Health.Test)
}
