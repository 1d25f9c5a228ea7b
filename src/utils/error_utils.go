// error_utils.go
package utils

import (
	"attendance-tracker/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleValidationError ตอบ 400 พร้อมรายชื่อฟิลด์ที่ไม่ผ่าน
func HandleValidationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Status:  fiber.StatusBadRequest,
		Message: "Validation failed",
		Fields:  ValidationFields(err),
	})
}
