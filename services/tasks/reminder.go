package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"courtflow/config"
	"courtflow/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask wraps a reminder payload as an asynq task.
func NewReminderTask(p models.ReminderPayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReminderSend, b), nil
}

// AsynqReminderQueue implements schedule.ReminderQueue on the Redis-backed
// asynq queue. MaxRetry bounds delivery attempts; exhaustion never reaches
// back into the reminder flags.
type AsynqReminderQueue struct {
	client *asynq.Client
}

func NewAsynqReminderQueue() *AsynqReminderQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderQueue{client: client}
}

func (q *AsynqReminderQueue) EnqueueReminder(ctx context.Context, p models.ReminderPayload) error {
	task, err := NewReminderTask(p)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	opts := []asynq.Option{asynq.MaxRetry(config.AppConfig.ReminderMaxRetry)}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (q *AsynqReminderQueue) Close() error {
	return q.client.Close()
}
