package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/services/attendance"
	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AttendanceService is implemented by attendance.Service.
type AttendanceService interface {
	GetDayView(ctx context.Context, studentID string, day time.Time) (*models.DayView, error)
	Mark(ctx context.Context, in models.AttendanceMark) (*models.AttendanceRecord, error)
	GetStats(ctx context.Context, studentID string, period models.Period) (*models.AttendanceStats, error)
}

type AttendanceController struct {
	svc AttendanceService
}

func NewAttendanceController(svc AttendanceService) *AttendanceController {
	return &AttendanceController{svc: svc}
}

type dayQuery struct {
	StudentID string `query:"student_id" validate:"required"`
	Date      string `query:"date" validate:"required,datetime=2006-01-02"`
}

// GetDay godoc
// @Summary      Attendance records and suggestions for one day
// @Description  Past unmarked days are backfilled as holiday before the records are returned.
// @Tags         attendance
// @Produce      json
// @Param        student_id  query  string  true  "Student ID"
// @Param        date        query  string  true  "Date (YYYY-MM-DD)"
// @Success      200  {object}  models.DayView
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /attendance/day [get]
func (ac *AttendanceController) GetDay(c *fiber.Ctx) error {
	q := dayQuery{StudentID: c.Query("student_id"), Date: c.Query("date")}
	if q.Date == "" {
		q.Date = c.Query("d")
	}
	if err := utils.Validate(q); err != nil {
		return utils.HandleValidationError(c, err)
	}
	day, err := utils.ParseDate(q.Date)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid date")
	}

	view, err := ac.svc.GetDayView(c.UserContext(), q.StudentID, day)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(view)
}

// Mark godoc
// @Summary      Mark attendance for a subject on a date
// @Description  Holiday and teacher-leave days override the submitted status.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        body  body  models.AttendanceMark  true  "Attendance"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /attendance/mark [post]
func (ac *AttendanceController) Mark(c *fiber.Ctx) error {
	var body models.AttendanceMark
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := utils.Validate(body); err != nil {
		return utils.HandleValidationError(c, err)
	}

	if _, err := ac.svc.Mark(c.UserContext(), body); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

type statsQuery struct {
	StudentID string        `validate:"required"`
	Period    models.Period `validate:"required,oneof=weekly monthly semester"`
}

// GetStats godoc
// @Summary      Attendance statistics for a period
// @Tags         attendance
// @Produce      json
// @Param        student_id  query  string  true   "Student ID"
// @Param        period      query  string  false  "weekly | monthly | semester"  default(weekly)
// @Success      200  {object}  models.AttendanceStats
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /attendance/stats [get]
func (ac *AttendanceController) GetStats(c *fiber.Ctx) error {
	q := statsQuery{
		StudentID: c.Query("student_id"),
		Period:    models.Period(c.Query("period", string(models.PeriodWeekly))),
	}
	if err := utils.Validate(q); err != nil {
		return utils.HandleValidationError(c, err)
	}

	stats, err := ac.svc.GetStats(c.UserContext(), q.StudentID, q.Period)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

// serviceError แปลง error จาก service เป็น HTTP response
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, attendance.ErrInvalidPeriod),
		errors.Is(err, attendance.ErrAttendedExceedsHeld):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, "Not found")
	}
	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return utils.HandleError(c, fiber.StatusInternalServerError, "Internal server error")
}
