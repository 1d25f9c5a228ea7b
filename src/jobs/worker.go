package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"attendance-tracker/src/utils"

	"github.com/hibiken/asynq"
)

// StudentLister คืน id ของนิสิตทุกคน
type StudentLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// Backfiller is satisfied by attendance.Service.
type Backfiller interface {
	Backfill(ctx context.Context, studentID string, day time.Time) (int, error)
}

type BackfillHandler struct {
	students   StudentLister
	attendance Backfiller
	clock      utils.Clock
}

func NewBackfillHandler(students StudentLister, attendance Backfiller, clock utils.Clock) *BackfillHandler {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &BackfillHandler{students: students, attendance: attendance, clock: clock}
}

// RunDay backfills one day for every student and returns the number of
// records created. It stops at the first storage error.
func (h *BackfillHandler) RunDay(ctx context.Context, day time.Time) (int, error) {
	ids, err := h.students.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, id := range ids {
		n, err := h.attendance.Backfill(ctx, id, day)
		total += n
		if err != nil {
			return total, fmt.Errorf("backfill student %s: %w", id, err)
		}
	}
	return total, nil
}

func (h *BackfillHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	log.Println("🎯 Start backfill task")

	var payload BackfillDayPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	day := h.clock.Today().AddDate(0, 0, -1)
	if payload.Date != "" {
		d, err := utils.ParseDate(payload.Date)
		if err != nil {
			log.Println("❌ Invalid backfill date:", payload.Date)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		day = d
	}

	n, err := h.RunDay(ctx, day)
	if err != nil {
		log.Println("❌ Backfill failed:", err)
		return err
	}
	log.Printf("✅ Backfill %s done: %d records created", utils.FormatDate(day), n)
	return nil
}

// NewServeMux ผูก handler กับ type ของ task
func NewServeMux(backfill *BackfillHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeBackfillDay, backfill)
	return mux
}
