package controllers

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDayRunner struct {
	mock.Mock
}

func (m *MockDayRunner) RunDay(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(day)
	return args.Int(0), args.Error(1)
}

func newAdminJobsApp(runner DayRunner) *fiber.App {
	clock := utils.FixedClock(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))
	ac := NewAdminJobsController(nil, runner, clock)
	app := fiber.New()
	app.Post("/admin/backfill", ac.TriggerBackfill)
	app.Post("/admin/backfill/run-now", ac.RunBackfillNow)
	return app
}

func TestTriggerBackfillWithoutRedisRunsInline(t *testing.T) {
	runner := new(MockDayRunner)
	runner.On("RunDay", time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)).Return(3, nil)

	status, body := doJSON(t, newAdminJobsApp(runner), "POST", "/admin/backfill", nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "executed", body["status"])
	assert.Equal(t, "2024-06-09", body["date"])
	assert.Equal(t, 3.0, body["created"])
	runner.AssertExpectations(t)
}

func TestRunBackfillNowExplicitDate(t *testing.T) {
	runner := new(MockDayRunner)
	runner.On("RunDay", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).Return(0, nil)

	status, body := doJSON(t, newAdminJobsApp(runner), "POST", "/admin/backfill/run-now", map[string]string{"date": "2024-06-01"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "2024-06-01", body["date"])
	runner.AssertExpectations(t)
}

func TestRunBackfillNowErrors(t *testing.T) {
	runner := new(MockDayRunner)
	runner.On("RunDay", mock.Anything).Return(1, errors.New("write failed"))
	app := newAdminJobsApp(runner)

	status, body := doJSON(t, app, "POST", "/admin/backfill/run-now", map[string]string{"date": "June 1"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, body["fields"])

	status, _ = doJSON(t, app, "POST", "/admin/backfill/run-now", nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
}
