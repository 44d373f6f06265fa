package queue

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Handler processes a stored webhook payload. A non-nil error requeues
// the task with backoff.
type Handler func(ctx context.Context, payload []byte) error

// StartConsumer drains due retry tasks every 30 seconds. The returned
// scheduler should be shut down on exit.
func StartConsumer(ctx context.Context, q *RetryQueue, handle Handler) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(30*time.Second),
		gocron.NewTask(func() {
			drain(ctx, q, handle)
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	return scheduler, nil
}

func drain(ctx context.Context, q *RetryQueue, handle Handler) {
	tasks, err := q.Due(ctx, time.Now(), 50)
	if err != nil {
		log.Printf("retry queue poll failed: %v", err)
		return
	}
	for _, task := range tasks {
		if err := handle(ctx, task.Payload); err != nil {
			log.Printf("webhook retry %s failed (attempt %d): %v", task.ID, task.Attempts+1, err)
			if rqErr := q.Requeue(ctx, task, err); rqErr != nil {
				log.Printf("requeue of %s failed: %v", task.ID, rqErr)
			}
		}
	}
}
