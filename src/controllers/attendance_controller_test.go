package controllers

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendance-tracker/src/models"
	"attendance-tracker/src/services/attendance"
	"attendance-tracker/src/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) GetDayView(ctx context.Context, studentID string, day time.Time) (*models.DayView, error) {
	args := m.Called(studentID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DayView), args.Error(1)
}

func (m *MockAttendanceService) Mark(ctx context.Context, in models.AttendanceMark) (*models.AttendanceRecord, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceService) GetStats(ctx context.Context, studentID string, period models.Period) (*models.AttendanceStats, error) {
	args := m.Called(studentID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceStats), args.Error(1)
}

func newAttendanceApp(svc AttendanceService) *fiber.App {
	ac := NewAttendanceController(svc)
	app := fiber.New()
	app.Get("/attendance/day", ac.GetDay)
	app.Post("/attendance/mark", ac.Mark)
	app.Get("/attendance/stats", ac.GetStats)
	return app
}

func TestAttendanceController(t *testing.T) {
	suite := testutil.NewSuiteResult("Attendance Controller")
	defer suite.PrintSummary()

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	suite.Run(t, "DayViewOK", func(t *testing.T) {
		svc := new(MockAttendanceService)
		view := &models.DayView{
			Records:     []models.AttendanceRecord{{StudentID: "s1", SubjectCode: "CS101", Date: "2024-06-03", Status: models.StatusHoliday}},
			Suggestions: map[string]models.AttendanceStatus{},
		}
		svc.On("GetDayView", "s1", day).Return(view, nil)

		status, body := doJSON(t, newAttendanceApp(svc), "GET", "/attendance/day?student_id=s1&date=2024-06-03", nil)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Len(t, body["records"], 1)
		svc.AssertExpectations(t)
	})

	suite.Run(t, "DayViewAcceptsShortDateParam", func(t *testing.T) {
		svc := new(MockAttendanceService)
		svc.On("GetDayView", "s1", day).Return(&models.DayView{}, nil)

		status, _ := doJSON(t, newAttendanceApp(svc), "GET", "/attendance/day?student_id=s1&d=2024-06-03", nil)

		assert.Equal(t, fiber.StatusOK, status)
		svc.AssertExpectations(t)
	})

	suite.Run(t, "DayViewBadDate", func(t *testing.T) {
		svc := new(MockAttendanceService)

		status, body := doJSON(t, newAttendanceApp(svc), "GET", "/attendance/day?student_id=s1&date=03-06-2024", nil)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.NotEmpty(t, body["fields"])
		svc.AssertNotCalled(t, "GetDayView", mock.Anything, mock.Anything)
	})

	suite.Run(t, "DayViewStorageError", func(t *testing.T) {
		svc := new(MockAttendanceService)
		svc.On("GetDayView", "s1", day).Return(nil, errors.New("connection reset"))

		status, body := doJSON(t, newAttendanceApp(svc), "GET", "/attendance/day?student_id=s1&date=2024-06-03", nil)

		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", body["message"])
	})

	suite.Run(t, "MarkOK", func(t *testing.T) {
		svc := new(MockAttendanceService)
		in := models.AttendanceMark{StudentID: "s1", SubjectCode: "CS101", Date: "2024-06-03", Status: models.StatusAttended}
		svc.On("Mark", in).Return(&models.AttendanceRecord{}, nil)

		status, body := doJSON(t, newAttendanceApp(svc), "POST", "/attendance/mark", in)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["ok"])
		svc.AssertExpectations(t)
	})

	suite.Run(t, "MarkMissingFields", func(t *testing.T) {
		svc := new(MockAttendanceService)

		status, _ := doJSON(t, newAttendanceApp(svc), "POST", "/attendance/mark", map[string]string{"student_id": "s1"})

		assert.Equal(t, fiber.StatusBadRequest, status)
		svc.AssertNotCalled(t, "Mark", mock.Anything)
	})

	suite.Run(t, "MarkAttendedExceedsHeld", func(t *testing.T) {
		svc := new(MockAttendanceService)
		in := models.AttendanceMark{StudentID: "s1", SubjectCode: "CS101", Date: "2024-06-03", Status: models.StatusAttended}
		svc.On("Mark", in).Return(nil, attendance.ErrAttendedExceedsHeld)

		status, _ := doJSON(t, newAttendanceApp(svc), "POST", "/attendance/mark", in)

		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	suite.Run(t, "StatsDefaultsToWeekly", func(t *testing.T) {
		svc := new(MockAttendanceService)
		svc.On("GetStats", "s1", models.PeriodWeekly).Return(&models.AttendanceStats{Period: models.PeriodWeekly}, nil)

		status, body := doJSON(t, newAttendanceApp(svc), "GET", "/attendance/stats?student_id=s1", nil)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "weekly", body["period"])
		svc.AssertExpectations(t)
	})

	suite.Run(t, "StatsInvalidPeriod", func(t *testing.T) {
		svc := new(MockAttendanceService)

		status, _ := doJSON(t, newAttendanceApp(svc), "GET", "/attendance/stats?student_id=s1&period=yearly", nil)

		assert.Equal(t, fiber.StatusBadRequest, status)
		svc.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
	})

	suite.Run(t, "StatsMissingStudent", func(t *testing.T) {
		svc := new(MockAttendanceService)

		status, _ := doJSON(t, newAttendanceApp(svc), "GET", "/attendance/stats?period=monthly", nil)

		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}
