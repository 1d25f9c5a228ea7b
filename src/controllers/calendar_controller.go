package controllers

import (
	"context"
	"log"

	"attendance-tracker/src/models"
	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

// CalendarService is the admin side of calendar.Service.
type CalendarService interface {
	AddEntry(ctx context.Context, entry models.AcademicCalendarEntry) (*models.AcademicCalendarEntry, error)
	ListEntries(ctx context.Context, from, to string) ([]models.AcademicCalendarEntry, error)
	AddTeacherLeave(ctx context.Context, entry models.TeacherLeaveEntry) (*models.TeacherLeaveEntry, error)
	ListTeacherLeave(ctx context.Context, subjectCode, date string) ([]models.TeacherLeaveEntry, error)
}

type CalendarController struct {
	svc CalendarService
}

func NewCalendarController(svc CalendarService) *CalendarController {
	return &CalendarController{svc: svc}
}

// AddCalendarEntry godoc
// @Summary      Add an academic calendar entry
// @Description  type defaults to holiday.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  models.AcademicCalendarEntry  true  "Calendar entry"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /admin/calendar [post]
func (cc *CalendarController) AddCalendarEntry(c *fiber.Ctx) error {
	var entry models.AcademicCalendarEntry
	if err := c.BodyParser(&entry); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if entry.Type == "" {
		entry.Type = models.CalendarHoliday
	}
	if err := utils.Validate(entry); err != nil {
		return utils.HandleValidationError(c, err)
	}

	if _, err := cc.svc.AddEntry(c.UserContext(), entry); err != nil {
		log.Printf("❌ add calendar entry %s: %v", entry.Date, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type rangeQuery struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

// GetCalendar godoc
// @Summary      List calendar entries
// @Tags         metadata
// @Produce      json
// @Param        frm  query  string  false  "From date (inclusive)"
// @Param        to   query  string  false  "To date (inclusive)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /calendar [get]
func (cc *CalendarController) GetCalendar(c *fiber.Ctx) error {
	q := rangeQuery{From: c.Query("frm"), To: c.Query("to")}
	if err := utils.Validate(q); err != nil {
		return utils.HandleValidationError(c, err)
	}

	events, err := cc.svc.ListEntries(c.UserContext(), q.From, q.To)
	if err != nil {
		log.Printf("❌ list calendar: %v", err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{"events": events})
}

// AddTeacherLeave godoc
// @Summary      Record a teacher leave day for a subject
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  models.TeacherLeaveEntry  true  "Teacher leave"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /admin/teacher-leave [post]
func (cc *CalendarController) AddTeacherLeave(c *fiber.Ctx) error {
	var entry models.TeacherLeaveEntry
	if err := c.BodyParser(&entry); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := utils.Validate(entry); err != nil {
		return utils.HandleValidationError(c, err)
	}

	if _, err := cc.svc.AddTeacherLeave(c.UserContext(), entry); err != nil {
		log.Printf("❌ add teacher leave %s %s: %v", entry.SubjectCode, entry.Date, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type teacherLeaveQuery struct {
	SubjectCode string
	Date        string `validate:"omitempty,datetime=2006-01-02"`
}

// GetTeacherLeave godoc
// @Summary      List teacher leave entries
// @Tags         metadata
// @Produce      json
// @Param        subject_code  query  string  false  "Subject code"
// @Param        d             query  string  false  "Date (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Router       /teacher-leave [get]
func (cc *CalendarController) GetTeacherLeave(c *fiber.Ctx) error {
	q := teacherLeaveQuery{SubjectCode: c.Query("subject_code"), Date: c.Query("d")}
	if err := utils.Validate(q); err != nil {
		return utils.HandleValidationError(c, err)
	}

	items, err := cc.svc.ListTeacherLeave(c.UserContext(), q.SubjectCode, q.Date)
	if err != nil {
		log.Printf("❌ list teacher leave: %v", err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(fiber.Map{"items": items})
}
