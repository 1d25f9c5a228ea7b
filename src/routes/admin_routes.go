package routes

import "github.com/gofiber/fiber/v2"

// adminRoutes ไม่มีการตรวจสิทธิ์ (ระบบนี้ยืนยันตัวตนเท่านั้น)
func adminRoutes(app *fiber.App, h Handlers) {
	admin := app.Group("/admin")
	admin.Post("/subjects", h.Subject.CreateSubject)
	admin.Post("/calendar", h.Calendar.AddCalendarEntry)
	admin.Post("/teacher-leave", h.Calendar.AddTeacherLeave)
	admin.Post("/backfill", h.AdminJobs.TriggerBackfill)
	admin.Post("/backfill/run-now", h.AdminJobs.RunBackfillNow)
}
