package notification

import "context"

// NotificationService is the gateway for outbound pushes. Delivery is
// best-effort relative to the authoritative state transitions: a failed send
// never rolls back committed schedule or flag state.
type NotificationService interface {
	// Send delivers the rendered template to the recipient. The data map is
	// forwarded as the message payload.
	Send(ctx context.Context, recipientID, templateID string, data map[string]string) error
}

// Deduper records that a notification event was handed off once. MarkOnce
// reports true exactly once per key; retries of a partially-failed fanout
// skip recipients already marked.
type Deduper interface {
	MarkOnce(ctx context.Context, key string) (bool, error)
}

// DedupeKey builds the marker key for one recipient of one case event.
func DedupeKey(caseID, event, recipientID string) string {
	return "notify:" + caseID + ":" + event + ":" + recipientID
}
