package routes

import (
	"attendance-tracker/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func attendanceRoutes(app *fiber.App, h Handlers) {
	attendance := app.Group("/attendance")
	attendance.Use(middleware.AuthJWT(h.Blacklist))
	attendance.Get("/day", h.Attendance.GetDay)     // ดึงรายการเข้าเรียนรายวัน (backfill วันที่ผ่านมา)
	attendance.Post("/mark", h.Attendance.Mark)     // บันทึกการเข้าเรียน
	attendance.Get("/stats", h.Attendance.GetStats) // สถิติการเข้าเรียนตามช่วงเวลา
}
