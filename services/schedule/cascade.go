package schedule

import (
	"context"

	applicationRepo "courtflow/database/repository/application"
	caseRepo "courtflow/database/repository/case"
	"courtflow/models"
	"courtflow/services/notification"
	"courtflow/utils"

	"go.uber.org/zap"
)

// ApplicationCascade purges juror applications when a case is rescheduled
// and reopens it for new applications. The purge runs inside the approval
// transaction; the juror fanout runs strictly after commit.
type ApplicationCascade interface {
	// PurgeAndReopen deletes every application for the case, any status,
	// and sets the case open for applications. Returns the purged records so
	// the caller can notify affected jurors after commit. Idempotent: a
	// retry after a partial failure deletes nothing and returns no records.
	PurgeAndReopen(ctx context.Context, caseID string) ([]models.JurorApplication, error)
	// NotifyReopened pushes one notification per purged juror, deduped by
	// juror, case and reschedule event so a retried fanout never re-notifies.
	NotifyReopened(ctx context.Context, c *models.Case, eventID string, purged []models.JurorApplication)
}

// DefaultApplicationCascade is the production implementation.
type DefaultApplicationCascade struct {
	Cases    caseRepo.CaseRepository
	Apps     applicationRepo.ApplicationRepository
	Notifier notification.NotificationService
	Dedupe   notification.Deduper
}

func (s *DefaultApplicationCascade) PurgeAndReopen(ctx context.Context, caseID string) ([]models.JurorApplication, error) {
	purged, err := s.Apps.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Apps.DeleteByCase(ctx, caseID); err != nil {
		return nil, err
	}
	if err := s.Cases.SetStatus(ctx, caseID, models.CaseStatusOpenForApplications); err != nil {
		return nil, err
	}
	return purged, nil
}

func (s *DefaultApplicationCascade) NotifyReopened(ctx context.Context, c *models.Case, eventID string, purged []models.JurorApplication) {
	logger := utils.GetLogger()
	data := map[string]string{
		"caseId":     c.ID,
		"caseNumber": c.CaseNumber,
		"event":      eventID,
	}

	for _, app := range purged {
		key := notification.DedupeKey(c.ID, "reopened:"+eventID, app.JurorID)
		first, err := s.Dedupe.MarkOnce(ctx, key)
		if err != nil {
			logger.Error("juror dedupe marker failed, skipping to avoid double notify",
				zap.String("case", c.ID), zap.String("juror", app.JurorID), zap.Error(err))
			continue
		}
		if !first {
			continue
		}
		if err := s.Notifier.Send(ctx, app.JurorID, notification.TemplateCaseReopened, data); err != nil {
			// Marker is already set; the push is best-effort and not retried here.
			logger.Error("failed to notify juror of reopened case",
				zap.String("case", c.ID), zap.String("juror", app.JurorID), zap.Error(err))
		}
	}
}
