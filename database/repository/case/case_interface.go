package caseRepo

import (
	"context"
	"errors"

	"courtflow/models"
)

var (
	// ErrStaleSchedule is returned when a conditional schedule update matched
	// no document: the case's slot or status changed under the caller.
	ErrStaleSchedule = errors.New("case schedule changed since it was read")
	// ErrSlotTaken is returned when the unique scheduled-slot index rejects a
	// schedule move: another case claimed the slot first.
	ErrSlotTaken = errors.New("slot already claimed by another case")
)

// CaseRepository defines data access for case records. All mutations that
// participate in the reschedule approval run against the caller's context so
// they can join a session transaction.
type CaseRepository interface {
	// Create inserts a new case record.
	Create(ctx context.Context, c *models.Case) error
	// GetByID retrieves a case by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Case, error)
	// FindScheduledBySlot returns the case currently holding the given slot
	// within a jurisdiction pool, or nil if the slot is free. Cases reopened
	// for applications still hold their slot.
	FindScheduledBySlot(ctx context.Context, jurisdiction string, slot models.TimeSlot) (*models.Case, error)
	// ListScheduled retrieves every case holding a trial slot.
	ListScheduled(ctx context.Context) ([]models.Case, error)
	// MoveSchedule swaps the case's slot from `from` to `to` and resets all
	// reminder flags, guarded on the case still holding `from` in a
	// scheduled status. Returns ErrStaleSchedule when the guard fails.
	MoveSchedule(ctx context.Context, caseID string, from, to models.TimeSlot) error
	// SetStatus updates the case status.
	SetStatus(ctx context.Context, caseID, status string) error
	// MarkReminderSent flips the reminder flag for one threshold, guarded on
	// the flag being false and the case holding a slot. Reports whether this
	// call won the transition.
	MarkReminderSent(ctx context.Context, caseID string, t models.ReminderThreshold) (bool, error)
}
