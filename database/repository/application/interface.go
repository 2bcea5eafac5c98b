package applicationRepo

import (
	"context"

	"courtflow/models"
)

// ApplicationRepository defines data access for juror application records.
type ApplicationRepository interface {
	// Insert stores a new juror application.
	Insert(ctx context.Context, app *models.JurorApplication) error
	// ListByCase retrieves all applications for a case, any status.
	ListByCase(ctx context.Context, caseID string) ([]models.JurorApplication, error)
	// DeleteByCase removes all applications for a case and reports how many
	// were deleted. Deleting an already-purged case is not an error.
	DeleteByCase(ctx context.Context, caseID string) (int64, error)
}
