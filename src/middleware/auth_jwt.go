package middleware

import (
	"strings"

	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT ตรวจสอบ Bearer token และ blacklist (ถ้ามี Redis)
// ไม่มีการตรวจสิทธิ์ราย role ที่นี่
func AuthJWT(blacklist *utils.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
		}

		revoked, err := blacklist.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Token check failed"})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has been revoked"})
		}

		c.Locals("studentId", claims.StudentID)
		c.Locals("role", claims.Role)
		c.Locals("claims", claims)

		return c.Next()
	}
}
