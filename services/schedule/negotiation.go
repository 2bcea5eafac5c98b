package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"courtflow/database"
	caseRepo "courtflow/database/repository/case"
	rescheduleRepo "courtflow/database/repository/reschedule"
	userRepo "courtflow/database/repository/user"
	"courtflow/models"
	"courtflow/services/notification"
	"courtflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NegotiationService orchestrates both reschedule flows: attorney-initiated
// (single requested slot, admin-approved) and admin-initiated (offered
// alternates, attorney-selected). Both funnel through the same approval
// cascade: swap the case's slot, reset reminder flags, purge juror
// applications and reopen the case, all in one transaction.
type NegotiationService interface {
	CreateRequest(ctx context.Context, caseID, attorneyID string, newSlot models.TimeSlot, reason string) (*models.RescheduleRequest, error)
	Approve(ctx context.Context, requestID, adminID, comments string) error
	Reject(ctx context.Context, requestID, adminID, comments string) error
	ProposeSlots(ctx context.Context, caseID, adminID string, slots []models.TimeSlot) (*models.AdminRescheduleProposal, error)
	ConfirmSlot(ctx context.Context, caseID string, chosen models.TimeSlot) error
	WithdrawProposal(ctx context.Context, caseID, adminID string) error
	EvaluateWindow(ctx context.Context, caseID string, now time.Time) (*models.CaseWindow, error)
}

// DefaultNegotiationService is the production implementation.
type DefaultNegotiationService struct {
	Cases       caseRepo.CaseRepository
	Reschedules rescheduleRepo.RescheduleRepository
	Users       userRepo.UserRepository
	Resolver    ConflictResolver
	Cascade     ApplicationCascade
	Txn         database.TxnRunner
	Notifier    notification.NotificationService
}

// CreateRequest validates and persists an attorney's pending reschedule
// request, snapshotting the case's current slot.
func (s *DefaultNegotiationService) CreateRequest(ctx context.Context, caseID, attorneyID string, newSlot models.TimeSlot, reason string) (*models.RescheduleRequest, error) {
	c, err := s.Cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	pending, err := s.Reschedules.FindPendingByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrDuplicatePending
	}

	if err := s.Resolver.CheckAvailable(ctx, c.Jurisdiction, newSlot, c.ID); err != nil {
		return nil, err
	}

	req := &models.RescheduleRequest{
		ID:         uuid.New().String(),
		CaseID:     caseID,
		AttorneyID: attorneyID,
		Requested:  newSlot,
		Original:   c.Slot(),
		Reason:     reason,
		Status:     models.RescheduleStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Reschedules.CreateRequest(ctx, req); err != nil {
		if errors.Is(err, rescheduleRepo.ErrDuplicatePending) {
			return nil, ErrDuplicatePending
		}
		return nil, err
	}

	s.notifyAdminsOfRequest(ctx, c, newSlot)
	return req, nil
}

// notifyAdminsOfRequest pushes the new request to every administrator so
// someone picks it up for review. Best-effort: the request exists either way.
func (s *DefaultNegotiationService) notifyAdminsOfRequest(ctx context.Context, c *models.Case, slot models.TimeSlot) {
	admins, err := s.Users.ListAdmins(ctx)
	if err != nil {
		utils.GetLogger().Error("failed to list admins for request fanout",
			zap.String("case", c.ID), zap.Error(err))
		return
	}

	data := map[string]string{
		"caseId":     c.ID,
		"caseNumber": c.CaseNumber,
		"slot":       slot.String(),
	}
	for _, admin := range admins {
		if err := s.Notifier.Send(ctx, admin.ID, notification.TemplateRescheduleRequested, data); err != nil {
			utils.GetLogger().Error("failed to notify admin of reschedule request",
				zap.String("case", c.ID), zap.String("admin", admin.ID), zap.Error(err))
		}
	}
}

// Approve resolves a pending request and applies the full cascade. The slot
// is re-checked here because time has passed since the request was created;
// the transaction's conditional writes then close the remaining race at
// commit.
func (s *DefaultNegotiationService) Approve(ctx context.Context, requestID, adminID, comments string) error {
	req, err := s.Reschedules.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrNotFound
	}
	if req.Status != models.RescheduleStatusPending {
		return ErrAlreadyResolved
	}

	c, err := s.Cases.GetByID(ctx, req.CaseID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}

	if err := s.Resolver.CheckAvailable(ctx, c.Jurisdiction, req.Requested, c.ID); err != nil {
		return err
	}

	var purged []models.JurorApplication
	err = s.Txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Reschedules.ResolveRequest(ctx, requestID, models.RescheduleStatusApproved, adminID, comments, time.Now().UTC()); err != nil {
			return err
		}
		if err := s.Cases.MoveSchedule(ctx, c.ID, c.Slot(), req.Requested); err != nil {
			return err
		}
		purged, err = s.Cascade.PurgeAndReopen(ctx, c.ID)
		return err
	})
	if err != nil {
		return mapResolveError(err)
	}

	// Committed. Notifications are best-effort from here on.
	s.notifyScheduleMoved(ctx, c, req.AttorneyID, notification.TemplateRescheduleApproved, req.Requested, requestID, purged)
	return nil
}

// Reject resolves a pending request without touching the case. Comments are
// mandatory: the attorney must learn why.
func (s *DefaultNegotiationService) Reject(ctx context.Context, requestID, adminID, comments string) error {
	if strings.TrimSpace(comments) == "" {
		return ErrMissingReason
	}

	req, err := s.Reschedules.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrNotFound
	}
	if req.Status != models.RescheduleStatusPending {
		return ErrAlreadyResolved
	}

	if err := s.Reschedules.ResolveRequest(ctx, requestID, models.RescheduleStatusRejected, adminID, comments, time.Now().UTC()); err != nil {
		return mapResolveError(err)
	}

	c, err := s.Cases.GetByID(ctx, req.CaseID)
	if err != nil || c == nil {
		return nil
	}
	data := map[string]string{
		"caseId":     c.ID,
		"caseNumber": c.CaseNumber,
		"reason":     comments,
	}
	if err := s.Notifier.Send(ctx, req.AttorneyID, notification.TemplateRescheduleRejected, data); err != nil {
		utils.GetLogger().Error("failed to notify attorney of rejection",
			zap.String("request", requestID), zap.Error(err))
	}
	return nil
}

// ProposeSlots creates an admin offer of alternate slots. Every offered slot
// is validated now and re-validated when the attorney selects it.
func (s *DefaultNegotiationService) ProposeSlots(ctx context.Context, caseID, adminID string, slots []models.TimeSlot) (*models.AdminRescheduleProposal, error) {
	if len(slots) == 0 {
		return nil, ErrNoSlotsOffered
	}

	c, err := s.Cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	for _, slot := range slots {
		if err := s.Resolver.CheckAvailable(ctx, c.Jurisdiction, slot, c.ID); err != nil {
			return nil, err
		}
	}

	p := &models.AdminRescheduleProposal{
		ID:           uuid.New().String(),
		CaseID:       caseID,
		AdminID:      adminID,
		OfferedSlots: slots,
		Status:       models.ProposalStatusOpen,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Reschedules.CreateProposal(ctx, p); err != nil {
		if errors.Is(err, rescheduleRepo.ErrDuplicateOpen) {
			return nil, ErrDuplicateProposal
		}
		return nil, err
	}

	data := map[string]string{"caseId": c.ID, "caseNumber": c.CaseNumber}
	if err := s.Notifier.Send(ctx, c.AttorneyID, notification.TemplateSlotsProposed, data); err != nil {
		utils.GetLogger().Error("failed to notify attorney of proposal",
			zap.String("case", caseID), zap.Error(err))
	}
	return p, nil
}

// ConfirmSlot applies the attorney's selection from an open proposal. When
// the chosen slot was claimed between offer and selection, the proposal is
// left open untouched so the remaining alternates stay selectable.
func (s *DefaultNegotiationService) ConfirmSlot(ctx context.Context, caseID string, chosen models.TimeSlot) error {
	c, err := s.Cases.GetByID(ctx, caseID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}

	p, err := s.Reschedules.GetOpenProposalByCase(ctx, caseID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	if !p.Offers(chosen) {
		return ErrSlotNotOffered
	}

	if err := s.Resolver.CheckAvailable(ctx, c.Jurisdiction, chosen, c.ID); err != nil {
		return err
	}

	var purged []models.JurorApplication
	err = s.Txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Reschedules.ConfirmProposal(ctx, p.ID, chosen, time.Now().UTC()); err != nil {
			return err
		}
		if err := s.Cases.MoveSchedule(ctx, c.ID, c.Slot(), chosen); err != nil {
			return err
		}
		purged, err = s.Cascade.PurgeAndReopen(ctx, c.ID)
		return err
	})
	if err != nil {
		return mapResolveError(err)
	}

	s.notifyScheduleMoved(ctx, c, c.AttorneyID, notification.TemplateSlotConfirmed, chosen, p.ID, purged)
	return nil
}

// WithdrawProposal closes the case's open proposal without a selection, so
// the admin can re-offer a different set of slots. The attorney can no
// longer confirm from a withdrawn proposal.
func (s *DefaultNegotiationService) WithdrawProposal(ctx context.Context, caseID, adminID string) error {
	p, err := s.Reschedules.GetOpenProposalByCase(ctx, caseID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}

	if err := s.Reschedules.WithdrawProposal(ctx, p.ID, time.Now().UTC()); err != nil {
		return mapResolveError(err)
	}
	utils.GetLogger().Info("reschedule proposal withdrawn",
		zap.String("case", caseID), zap.String("proposal", p.ID), zap.String("admin", adminID))
	return nil
}

// EvaluateWindow reports the war-room gate for a case at the given instant.
func (s *DefaultNegotiationService) EvaluateWindow(ctx context.Context, caseID string, now time.Time) (*models.CaseWindow, error) {
	c, err := s.Cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	trial, err := c.TrialInstantUTC()
	if err != nil {
		return nil, err
	}

	nowUTC := now.UTC()
	return &models.CaseWindow{
		CaseID:            caseID,
		WarRoomOpen:       WarRoomOpen(nowUTC, trial),
		MinutesUntilTrial: MinutesUntilTrial(nowUTC, trial),
	}, nil
}

// notifyScheduleMoved fans out the post-commit notifications for a schedule
// change: one push to the attorney, one deduped push per purged juror.
func (s *DefaultNegotiationService) notifyScheduleMoved(ctx context.Context, c *models.Case, attorneyID, templateID string, slot models.TimeSlot, eventID string, purged []models.JurorApplication) {
	data := map[string]string{
		"caseId":     c.ID,
		"caseNumber": c.CaseNumber,
		"slot":       slot.String(),
	}
	if err := s.Notifier.Send(ctx, attorneyID, templateID, data); err != nil {
		utils.GetLogger().Error("failed to notify attorney of schedule change",
			zap.String("case", c.ID), zap.Error(err))
	}
	s.Cascade.NotifyReopened(ctx, c, eventID, purged)
}

// mapResolveError translates repository sentinels from the resolve pipeline
// into the service taxonomy.
func mapResolveError(err error) error {
	switch {
	case errors.Is(err, rescheduleRepo.ErrNotPending), errors.Is(err, rescheduleRepo.ErrNotOpen):
		return ErrAlreadyResolved
	case errors.Is(err, caseRepo.ErrSlotTaken), errors.Is(err, caseRepo.ErrStaleSchedule):
		return ErrSlotUnavailable
	default:
		return err
	}
}
