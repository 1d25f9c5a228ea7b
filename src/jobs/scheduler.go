package jobs

import (
	"errors"
	"fmt"
	"log"
	"time"

	"attendance-tracker/src/utils"

	"github.com/hibiken/asynq"
)

// EnqueueBackfill ส่ง task backfill ของวันที่ระบุเข้า queue
// task ของวันเดียวกันที่ยังค้างอยู่จะไม่ถูกส่งซ้ำ (คืน nil, nil)
func EnqueueBackfill(client *asynq.Client, day time.Time) (*asynq.TaskInfo, error) {
	date := utils.FormatDate(day)
	task, err := NewBackfillDayTask(date)
	if err != nil {
		return nil, err
	}
	info, err := client.Enqueue(task, asynq.TaskID(BackfillTaskID(date)), asynq.MaxRetry(3))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Printf("⚠️ backfill %s already queued", date)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("enqueue backfill %s: %w", date, err)
	}
	log.Printf("✅ scheduled backfill: %s", info.ID)
	return info, nil
}

// NewScheduler registers the nightly backfill of the previous day on
// cronspec (UTC).
func NewScheduler(redisOpt asynq.RedisClientOpt, cronspec string) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: time.UTC})

	task, err := NewBackfillDayTask("")
	if err != nil {
		return nil, err
	}
	entryID, err := scheduler.Register(cronspec, task, asynq.MaxRetry(3))
	if err != nil {
		return nil, fmt.Errorf("register backfill cron %q: %w", cronspec, err)
	}
	log.Printf("✅ registered nightly backfill (%s) entry=%s", cronspec, entryID)
	return scheduler, nil
}

// NewServer asynq worker server
func NewServer(redisOpt asynq.RedisClientOpt) *asynq.Server {
	return asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		Queues:      map[string]int{"default": 1},
	})
}
