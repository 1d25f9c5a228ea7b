package controllers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"attendance-tracker/src/models"
	"attendance-tracker/src/services/subjects"
	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	minSemester = 1
	maxSemester = 8
)

// SubjectService is implemented by subjects.Service.
type SubjectService interface {
	Create(ctx context.Context, subject models.Subject) (*models.Subject, error)
	ListBySemester(ctx context.Context, semester int) ([]models.Subject, error)
}

type SubjectController struct {
	svc SubjectService
}

func NewSubjectController(svc SubjectService) *SubjectController {
	return &SubjectController{svc: svc}
}

// GetSemesters godoc
// @Summary      List semester numbers
// @Tags         metadata
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /semesters [get]
func (sc *SubjectController) GetSemesters(c *fiber.Ctx) error {
	semesters := make([]int, 0, maxSemester)
	for i := minSemester; i <= maxSemester; i++ {
		semesters = append(semesters, i)
	}
	return c.JSON(fiber.Map{"semesters": semesters})
}

// CreateSubject godoc
// @Summary      Create a subject
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  models.Subject  true  "Subject"
// @Success      200  {object}  models.Subject
// @Failure      400  {object}  models.ErrorResponse
// @Router       /admin/subjects [post]
func (sc *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := utils.Validate(subject); err != nil {
		return utils.HandleValidationError(c, err)
	}

	created, err := sc.svc.Create(c.UserContext(), subject)
	if err != nil {
		if errors.Is(err, subjects.ErrSubjectExists) {
			return utils.HandleError(c, fiber.StatusBadRequest, "Subject code exists")
		}
		log.Printf("❌ create subject %s: %v", subject.Code, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(created)
}

// GetSubjects godoc
// @Summary      List subjects of a semester
// @Tags         metadata
// @Produce      json
// @Param        semester  query  int  true  "Semester (1-8)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /subjects [get]
func (sc *SubjectController) GetSubjects(c *fiber.Ctx) error {
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil || semester < minSemester || semester > maxSemester {
		return utils.HandleError(c, fiber.StatusBadRequest, "semester must be between 1 and 8")
	}

	list, err := sc.svc.ListBySemester(c.UserContext(), semester)
	if err != nil {
		log.Printf("❌ list subjects semester %d: %v", semester, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{"subjects": list})
}
