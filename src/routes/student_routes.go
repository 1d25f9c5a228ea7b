package routes

import (
	"attendance-tracker/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// studentRoutes กำหนดเส้นทางสำหรับ Student API
func studentRoutes(app *fiber.App, h Handlers) {
	student := app.Group("/student")
	student.Use(middleware.AuthJWT(h.Blacklist))
	student.Get("/:id", h.Student.GetStudent)    // ดึงข้อมูลนิสิต
	student.Put("/:id", h.Student.UpdateStudent) // อัปเดตข้อมูลนิสิต
}
