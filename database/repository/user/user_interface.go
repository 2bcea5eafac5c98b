package userRepo

import (
	"context"

	"courtflow/models"
)

// UserRepository defines the account lookups this service needs: role
// gating in the middleware and FCM tokens for the notification gateway.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID, or nil if absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, u *models.User) error
	// UpdateFCMToken replaces the user's push token.
	UpdateFCMToken(ctx context.Context, id, token string) error
	// ListAdmins retrieves every administrator account, for review fanouts.
	ListAdmins(ctx context.Context) ([]models.User, error)
}
