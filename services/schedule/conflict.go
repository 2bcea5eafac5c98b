package schedule

import (
	"context"
	"time"

	caseRepo "courtflow/database/repository/case"
	"courtflow/models"
)

// ConflictResolver checks whether a candidate slot is free within a
// jurisdiction's bookable pool. It holds no cache: a negotiation calls it at
// proposal time and again at confirmation time, and each call re-evaluates
// against current state.
type ConflictResolver interface {
	CheckAvailable(ctx context.Context, jurisdiction string, slot models.TimeSlot, excludeCaseID string) error
}

// DefaultConflictResolver resolves against the case store.
type DefaultConflictResolver struct {
	Cases caseRepo.CaseRepository
}

// CheckAvailable returns ErrMalformedSlot for an unparsable slot,
// ErrSlotUnavailable when another case in the pool occupies it, nil when
// free. The case being moved is excluded so a no-op reschedule onto its own
// slot is not a conflict.
func (r *DefaultConflictResolver) CheckAvailable(ctx context.Context, jurisdiction string, slot models.TimeSlot, excludeCaseID string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}

	occupant, err := r.Cases.FindScheduledBySlot(ctx, jurisdiction, slot)
	if err != nil {
		return err
	}
	if occupant != nil && occupant.ID != excludeCaseID {
		return ErrSlotUnavailable
	}
	return nil
}

// ValidateSlot checks the slot's date and time shape.
func ValidateSlot(slot models.TimeSlot) error {
	if _, err := time.Parse("2006-01-02", slot.Date); err != nil {
		return ErrMalformedSlot
	}
	if _, err := time.Parse("15:04", slot.Time); err != nil {
		return ErrMalformedSlot
	}
	return nil
}
