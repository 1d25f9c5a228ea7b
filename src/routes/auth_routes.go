package routes

import (
	"attendance-tracker/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// authRoutes กำหนด route สำหรับ auth (OTP / email / logout)
func authRoutes(app *fiber.App, h Handlers) {
	auth := app.Group("/auth")

	auth.Post("/request-otp", h.Auth.RequestOTP)                         // 📱 ขอรหัส OTP
	auth.Post("/verify-otp", h.Auth.VerifyOTP)                           // 🔐 ยืนยัน OTP
	auth.Post("/register-email", h.Auth.RegisterEmail)                   // 📝 สมัครด้วยอีเมล
	auth.Post("/login-email", h.Auth.LoginEmail)                         // 🔐 login ด้วยอีเมล
	auth.Post("/logout", middleware.AuthJWT(h.Blacklist), h.Auth.Logout) // 🚪 logout
}
