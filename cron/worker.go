package cron

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"courtflow/config"
	"courtflow/models"
	"courtflow/services/notification"
	"courtflow/services/schedule"
	"courtflow/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async delivery worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(notifSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			// Malformed payloads never become deliverable; do not retry.
			return nil
		}

		data := map[string]string{
			"caseId":     p.CaseID,
			"caseNumber": p.CaseNumber,
			"days":       strconv.Itoa(p.ThresholdDays),
			"trialAt":    p.TrialAtUTC,
		}

		// Returning the error lets asynq retry up to the task's MaxRetry.
		// The reminder flag stays committed either way.
		if err := notifSvc.Send(ctx, p.RecipientID, notification.TemplateTrialReminder, data); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for case %s: %v", p.CaseID, err)
			return err
		}
		return nil
	}
}

// StartReminderCron drives the dispatcher on a fixed interval, decoupled
// from inbound request handling.
func StartReminderCron(ctx context.Context, dispatcher schedule.ReminderDispatcher) {
	interval := time.Duration(config.AppConfig.ReminderTickSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder cron shutdown signal received.")
			return
		case <-ticker.C:
			dispatched, err := dispatcher.Tick(ctx, time.Now().UTC())
			if err != nil {
				log.Printf("Reminder tick failed: %v\n", err)
				continue
			}
			if len(dispatched) > 0 {
				log.Printf("Reminder tick dispatched %d notification(s)", len(dispatched))
			}
		}
	}
}
