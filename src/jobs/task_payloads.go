package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeBackfillDay สร้าง record วันหยุดย้อนหลังให้นิสิตทุกคนสำหรับวันหนึ่ง
const TypeBackfillDay = "attendance:backfill-day"

// BackfillDayPayload an empty Date means "yesterday" at processing time.
type BackfillDayPayload struct {
	Date string `json:"date,omitempty"`
}

func NewBackfillDayTask(date string) (*asynq.Task, error) {
	payload, err := json.Marshal(BackfillDayPayload{Date: date})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBackfillDay, payload), nil
}

// BackfillTaskID dedups enqueues for the same day.
func BackfillTaskID(date string) string {
	return "backfill-" + date
}
