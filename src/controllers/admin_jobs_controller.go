package controllers

import (
	"context"
	"log"
	"time"

	"attendance-tracker/src/jobs"
	"attendance-tracker/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// DayRunner is implemented by jobs.BackfillHandler.
type DayRunner interface {
	RunDay(ctx context.Context, day time.Time) (int, error)
}

type AdminJobsController struct {
	client *asynq.Client
	runner DayRunner
	clock  utils.Clock
}

// NewAdminJobsController client may be nil when redis is not configured;
// backfills then run in-process.
func NewAdminJobsController(client *asynq.Client, runner DayRunner, clock utils.Clock) *AdminJobsController {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &AdminJobsController{client: client, runner: runner, clock: clock}
}

type backfillRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// parseDay อ่านวันที่จาก body (ว่าง = เมื่อวาน)
func (ac *AdminJobsController) parseDay(c *fiber.Ctx) (time.Time, error) {
	var req backfillRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return time.Time{}, err
		}
	}
	if err := utils.Validate(req); err != nil {
		return time.Time{}, err
	}
	if req.Date == "" {
		return ac.clock.Today().AddDate(0, 0, -1), nil
	}
	return utils.ParseDate(req.Date)
}

func badBackfillRequest(c *fiber.Ctx, err error) error {
	if utils.IsValidationError(err) {
		return utils.HandleValidationError(c, err)
	}
	return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input format")
}

// TriggerBackfill godoc
// @Summary      Backfill a past day for every student
// @Description  Enqueues the backfill task when Asynq (Redis) is configured, otherwise runs it in-process. date defaults to yesterday.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  backfillRequest  false  "Day to backfill"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /admin/backfill [post]
func (ac *AdminJobsController) TriggerBackfill(c *fiber.Ctx) error {
	day, err := ac.parseDay(c)
	if err != nil {
		return badBackfillRequest(c, err)
	}
	date := utils.FormatDate(day)

	if ac.client == nil {
		return ac.runNow(c, day)
	}

	info, err := jobs.EnqueueBackfill(ac.client, day)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	if info == nil {
		return c.JSON(fiber.Map{"status": "already_queued", "date": date})
	}
	return c.JSON(fiber.Map{"status": "enqueued", "date": date, "taskId": info.ID})
}

// RunBackfillNow godoc
// @Summary      Backfill a past day in-process
// @Description  Runs the same logic as the background worker synchronously. Does not require Redis.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  backfillRequest  false  "Day to backfill"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /admin/backfill/run-now [post]
func (ac *AdminJobsController) RunBackfillNow(c *fiber.Ctx) error {
	day, err := ac.parseDay(c)
	if err != nil {
		return badBackfillRequest(c, err)
	}
	return ac.runNow(c, day)
}

func (ac *AdminJobsController) runNow(c *fiber.Ctx, day time.Time) error {
	date := utils.FormatDate(day)
	n, err := ac.runner.RunDay(c.UserContext(), day)
	if err != nil {
		log.Printf("❌ backfill %s: %v", date, err)
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"status": "executed", "date": date, "created": n})
}
