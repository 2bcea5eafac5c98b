package models

import "time"

// Juror application status values.
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusApproved  = "approved"
	ApplicationStatusDeclined  = "declined"
)

// JurorApplication records a juror applying to sit on a case. All
// applications for a case, whatever their status, are purged when the case
// is rescheduled.
type JurorApplication struct {
	ID        string    `bson:"id" json:"id"`
	CaseID    string    `bson:"case_id" json:"caseId"`
	JurorID   string    `bson:"juror_id" json:"jurorId"`
	Status    string    `bson:"status" json:"status"`
	AppliedAt time.Time `bson:"applied_at" json:"appliedAt"`
}
