// Package queue persists failed webhook deliveries in Redis and replays
// them with exponential backoff until they succeed or exhaust attempts.
package queue

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/yamamaalobaid/damascus-tour-guide/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	retryKey      = "webhook:retry"
	deadLetterKey = "webhook:dead"

	MaxAttempts = 8

	baseBackoff = time.Minute
	maxBackoff  = time.Hour
)

type Task struct {
	ID         string          `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	LastError  string          `json:"last_error,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

type RetryQueue struct {
	rdb *redis.Client
}

func NewRetryQueue(rdb *redis.Client) *RetryQueue {
	return &RetryQueue{rdb: rdb}
}

// NewRedisClient builds the shared Redis connection from the environment.
func NewRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.ConfigOr("REDIS_ADDR", "localhost:6379"),
		Password: config.Config("REDIS_PASSWORD"),
	})
}

func backoff(attempts int) time.Duration {
	if attempts > 6 {
		return maxBackoff
	}
	d := baseBackoff << attempts
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// Enqueue schedules a fresh task for its first retry.
func (q *RetryQueue) Enqueue(ctx context.Context, payload []byte) error {
	task := Task{
		ID:         uuid.NewString(),
		Payload:    payload,
		Attempts:   0,
		EnqueuedAt: time.Now(),
	}
	return q.add(ctx, task, time.Now().Add(backoff(0)))
}

// Requeue reschedules a task after a failed attempt, moving it to the
// dead-letter list once attempts are exhausted.
func (q *RetryQueue) Requeue(ctx context.Context, task Task, lastErr error) error {
	task.Attempts++
	if lastErr != nil {
		task.LastError = lastErr.Error()
	}
	if task.Attempts >= MaxAttempts {
		raw, err := json.Marshal(task)
		if err != nil {
			return err
		}
		log.Printf("webhook task %s exhausted %d attempts, dead-lettering", task.ID, task.Attempts)
		return q.rdb.LPush(ctx, deadLetterKey, raw).Err()
	}
	return q.add(ctx, task, time.Now().Add(backoff(task.Attempts)))
}

func (q *RetryQueue) add(ctx context.Context, task Task, at time.Time) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.rdb.ZAdd(ctx, retryKey, redis.Z{
		Score:  float64(at.Unix()),
		Member: raw,
	}).Err()
}

// Due pops up to limit tasks whose retry time has arrived. Popped tasks
// are removed from the set; a handler that fails must Requeue.
func (q *RetryQueue) Due(ctx context.Context, now time.Time, limit int64) ([]Task, error) {
	members, err := q.rdb.ZRangeByScore(ctx, retryKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(members))
	for _, raw := range members {
		removed, err := q.rdb.ZRem(ctx, retryKey, raw).Result()
		if err != nil {
			return tasks, err
		}
		if removed == 0 {
			continue // claimed by a concurrent consumer
		}
		var task Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			log.Printf("dropping malformed retry task: %v", err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// DeadLetters returns the most recent dead-lettered tasks for inspection.
func (q *RetryQueue) DeadLetters(ctx context.Context, limit int64) ([]Task, error) {
	raws, err := q.rdb.LRange(ctx, deadLetterKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	tasks := make([]Task, 0, len(raws))
	for _, raw := range raws {
		var task Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// PendingCount reports how many tasks await retry.
func (q *RetryQueue) PendingCount(ctx context.Context) (int64, error) {
	return q.rdb.ZCard(ctx, retryKey).Result()
}
