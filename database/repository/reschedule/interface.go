package rescheduleRepo

import (
	"context"
	"errors"
	"time"

	"courtflow/models"
)

var (
	// ErrDuplicatePending is returned when a case already has a pending
	// reschedule request.
	ErrDuplicatePending = errors.New("case already has a pending reschedule request")
	// ErrDuplicateOpen is returned when a case already has an open admin
	// proposal.
	ErrDuplicateOpen = errors.New("case already has an open reschedule proposal")
	// ErrNotPending is returned when a resolution write matched no pending
	// request: it was already resolved or never existed.
	ErrNotPending = errors.New("reschedule request is not pending")
	// ErrNotOpen is returned when a proposal write matched no open proposal.
	ErrNotOpen = errors.New("reschedule proposal is not open")
)

// RescheduleRepository defines data access for reschedule requests and admin
// proposals. Requests and proposals transition to a terminal state exactly
// once; every resolution write is guarded on the non-terminal status.
type RescheduleRepository interface {
	// CreateRequest inserts a pending request. Returns ErrDuplicatePending
	// if the case already has one.
	CreateRequest(ctx context.Context, req *models.RescheduleRequest) error
	// GetRequest retrieves a request by ID, or nil if absent.
	GetRequest(ctx context.Context, id string) (*models.RescheduleRequest, error)
	// FindPendingByCase returns the case's pending request, or nil.
	FindPendingByCase(ctx context.Context, caseID string) (*models.RescheduleRequest, error)
	// ResolveRequest moves a pending request to a terminal status. Returns
	// ErrNotPending when the request is missing or already resolved.
	ResolveRequest(ctx context.Context, id, status, adminID, comments string, at time.Time) error

	// CreateProposal inserts an open admin proposal. Returns ErrDuplicateOpen
	// if the case already has one.
	CreateProposal(ctx context.Context, p *models.AdminRescheduleProposal) error
	// GetOpenProposalByCase returns the case's open proposal, or nil.
	GetOpenProposalByCase(ctx context.Context, caseID string) (*models.AdminRescheduleProposal, error)
	// ConfirmProposal closes an open proposal with the chosen slot. Returns
	// ErrNotOpen when the proposal is missing or already closed.
	ConfirmProposal(ctx context.Context, id string, chosen models.TimeSlot, at time.Time) error
	// WithdrawProposal closes an open proposal without a selection. Returns
	// ErrNotOpen when the proposal is missing or already closed.
	WithdrawProposal(ctx context.Context, id string, at time.Time) error
}
