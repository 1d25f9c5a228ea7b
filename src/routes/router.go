package routes

import (
	"attendance-tracker/src/controllers"
	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

// Handlers รวม controller ทั้งหมดที่ main สร้างไว้
type Handlers struct {
	Attendance *controllers.AttendanceController
	Auth       *controllers.AuthController
	Student    *controllers.StudentController
	Subject    *controllers.SubjectController
	Calendar   *controllers.CalendarController
	Health     *controllers.HealthController
	AdminJobs  *controllers.AdminJobsController
	Blacklist  *utils.TokenBlacklist
}

func InitRoutes(app *fiber.App, h Handlers) {
	healthRoutes(app, h)
	authRoutes(app, h)
	attendanceRoutes(app, h)
	studentRoutes(app, h)
	metadataRoutes(app, h)
	adminRoutes(app, h)
}
