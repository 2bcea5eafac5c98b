package models

// ReminderPayload is the queued payload for one trial reminder delivery.
type ReminderPayload struct {
	CaseID        string `json:"caseId"`
	CaseNumber    string `json:"caseNumber"`
	RecipientID   string `json:"recipientId"`
	ThresholdDays int    `json:"thresholdDays"`
	TrialAtUTC    string `json:"trialAtUtc"` // RFC 3339
}
