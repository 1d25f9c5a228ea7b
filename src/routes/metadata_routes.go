package routes

import "github.com/gofiber/fiber/v2"

// ข้อมูลอ้างอิงที่อ่านได้โดยไม่ต้อง login
func metadataRoutes(app *fiber.App, h Handlers) {
	app.Get("/semesters", h.Subject.GetSemesters)
	app.Get("/subjects", h.Subject.GetSubjects)
	app.Get("/calendar", h.Calendar.GetCalendar)
	app.Get("/teacher-leave", h.Calendar.GetTeacherLeave)
}
