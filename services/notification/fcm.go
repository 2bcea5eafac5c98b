package notification

import (
	"context"
	"fmt"

	userRepo "courtflow/database/repository/user"
	"courtflow/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotificationService is the production implementation, delivering over
// Firebase Cloud Messaging.
type FCMNotificationService struct {
	Users userRepo.UserRepository
}

func NewFCMNotificationService(users userRepo.UserRepository) (*FCMNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &FCMNotificationService{Users: users}, nil
}

// Send looks up the recipient's FCM token, renders the template and pushes.
func (s *FCMNotificationService) Send(ctx context.Context, recipientID, templateID string, data map[string]string) error {
	u, err := s.Users.GetByID(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("send %s: could not find user %s: %w", templateID, recipientID, err)
	}
	if u == nil || u.FCMToken == "" {
		// No push target registered. Nothing to deliver.
		utils.GetLogger().Debug("recipient has no FCM token, skipping push",
			zap.String("recipient", recipientID), zap.String("template", templateID))
		return nil
	}

	title, body := Render(templateID, data)
	if data == nil {
		data = map[string]string{}
	}
	data["template"] = templateID

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s: failed to send FCM message: %w", templateID, err)
	}
	return nil
}
