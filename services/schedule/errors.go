package schedule

import "fmt"

// ScheduleError is a typed error surfaced to the initiating party. The code
// tells the API layer (and the client) whether a fresh choice, a state
// refresh, or corrected input is needed.
type ScheduleError struct {
	Code    string
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// Conflict errors: resolution requires a fresh human choice, never an
	// automatic retry.
	ErrSlotUnavailable = &ScheduleError{
		Code:    "SLOT_UNAVAILABLE",
		Message: "another case in this jurisdiction already occupies the requested slot",
	}
	ErrDuplicatePending = &ScheduleError{
		Code:    "DUPLICATE_PENDING_REQUEST",
		Message: "a pending reschedule request already exists for this case",
	}
	ErrDuplicateProposal = &ScheduleError{
		Code:    "DUPLICATE_OPEN_PROPOSAL",
		Message: "an open reschedule proposal already exists for this case",
	}

	// State errors: the client acted on stale state.
	ErrNotFound = &ScheduleError{
		Code:    "NOT_FOUND",
		Message: "no such case, request or proposal",
	}
	ErrAlreadyResolved = &ScheduleError{
		Code:    "ALREADY_RESOLVED",
		Message: "the request was already resolved",
	}

	// Validation errors: surfaced immediately, never retried.
	ErrMissingReason = &ScheduleError{
		Code:    "MISSING_REASON",
		Message: "a rejection requires comments explaining the reason",
	}
	ErrMalformedSlot = &ScheduleError{
		Code:    "MALFORMED_SLOT",
		Message: "slot date must be YYYY-MM-DD and time HH:MM",
	}
	ErrSlotNotOffered = &ScheduleError{
		Code:    "SLOT_NOT_OFFERED",
		Message: "the chosen slot is not among the offered alternates",
	}
	ErrNoSlotsOffered = &ScheduleError{
		Code:    "MISSING_SLOTS",
		Message: "a proposal must offer at least one alternate slot",
	}
)
