package schedule

import (
	"context"
	"time"

	caseRepo "courtflow/database/repository/case"
	"courtflow/models"
	"courtflow/utils"

	"go.uber.org/zap"
)

// ReminderQueue hands a committed reminder off for delivery. The production
// implementation enqueues an asynq task; delivery retries live entirely on
// that side and never touch the reminder flags.
type ReminderQueue interface {
	EnqueueReminder(ctx context.Context, p models.ReminderPayload) error
}

// ReminderDispatcher evaluates every case holding a trial slot against the
// reminder thresholds on a fixed interval.
type ReminderDispatcher interface {
	// Tick runs one evaluation pass and returns the dispatches it committed.
	Tick(ctx context.Context, now time.Time) ([]models.ReminderDispatch, error)
}

// DefaultReminderDispatcher is the production implementation.
type DefaultReminderDispatcher struct {
	Cases caseRepo.CaseRepository
	Queue ReminderQueue
}

// Tick walks every scheduled case, flips the flag for each newly due
// threshold via compare-and-swap, and enqueues delivery only for flips this
// tick won. Overlapping or retried ticks therefore dispatch each threshold
// at most once per case. A case reopened for applications keeps receiving
// reminders for its slot.
func (d *DefaultReminderDispatcher) Tick(ctx context.Context, now time.Time) ([]models.ReminderDispatch, error) {
	nowUTC := now.UTC()
	logger := utils.GetLogger()

	cases, err := d.Cases.ListScheduled(ctx)
	if err != nil {
		return nil, err
	}

	var dispatched []models.ReminderDispatch
	for i := range cases {
		c := &cases[i]

		trial, err := c.TrialInstantUTC()
		if err != nil {
			logger.Warn("skipping case with malformed schedule", zap.String("case", c.ID), zap.Error(err))
			continue
		}

		for _, t := range DueThresholds(nowUTC, trial, c.Reminders) {
			won, err := d.Cases.MarkReminderSent(ctx, c.ID, t)
			if err != nil {
				logger.Error("reminder flag update failed",
					zap.String("case", c.ID), zap.Int("thresholdDays", int(t)), zap.Error(err))
				continue
			}
			if !won {
				// Another tick committed this threshold first.
				continue
			}

			payload := models.ReminderPayload{
				CaseID:        c.ID,
				CaseNumber:    c.CaseNumber,
				RecipientID:   c.AttorneyID,
				ThresholdDays: int(t),
				TrialAtUTC:    trial.Format(time.RFC3339),
			}
			if err := d.Queue.EnqueueReminder(ctx, payload); err != nil {
				// The flag is committed; this reminder will not fire again.
				logger.Error("failed to enqueue reminder after flag commit",
					zap.String("case", c.ID), zap.Int("thresholdDays", int(t)), zap.Error(err))
			}

			dispatched = append(dispatched, models.ReminderDispatch{
				CaseID:       c.ID,
				RecipientID:  c.AttorneyID,
				Threshold:    t,
				DispatchedAt: nowUTC,
			})
		}
	}
	return dispatched, nil
}
