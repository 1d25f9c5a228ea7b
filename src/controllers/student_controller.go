package controllers

import (
	"context"
	"errors"
	"log"

	"attendance-tracker/src/models"
	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

// StudentService is implemented by students.Service.
type StudentService interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Update(ctx context.Context, id string, upd models.StudentUpdate) (*models.Student, error)
}

type StudentController struct {
	svc StudentService
}

func NewStudentController(svc StudentService) *StudentController {
	return &StudentController{svc: svc}
}

// GetStudent godoc
// @Summary      Get a student profile
// @Tags         students
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Student ID"
// @Success      200  {object}  models.Student
// @Failure      404  {object}  models.ErrorResponse
// @Router       /student/{id} [get]
func (sc *StudentController) GetStudent(c *fiber.Ctx) error {
	student, err := sc.svc.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return studentError(c, err)
	}
	return c.JSON(student)
}

// UpdateStudent godoc
// @Summary      Update a student profile
// @Description  Only the fields present in the body are changed.
// @Tags         students
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Student ID"
// @Param        body  body  models.StudentUpdate  true  "Fields to update"
// @Success      200  {object}  models.Student
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /student/{id} [put]
func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	var upd models.StudentUpdate
	if err := c.BodyParser(&upd); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := utils.Validate(upd); err != nil {
		return utils.HandleValidationError(c, err)
	}

	student, err := sc.svc.Update(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return studentError(c, err)
	}
	return c.JSON(student)
}

func studentError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Student not found")
	}
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
}
