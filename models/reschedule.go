package models

import "time"

// RescheduleRequest status values. A request leaves "pending" exactly once
// and is immutable afterward.
const (
	RescheduleStatusPending  = "pending"
	RescheduleStatusApproved = "approved"
	RescheduleStatusRejected = "rejected"
)

// RescheduleRequest is an attorney-initiated negotiation to move a case's
// trial slot, resolved by an administrator.
type RescheduleRequest struct {
	ID         string `bson:"id" json:"id"`
	CaseID     string `bson:"case_id" json:"caseId"`
	AttorneyID string `bson:"attorney_id" json:"attorneyId"`

	Requested TimeSlot `bson:"requested" json:"requested"`
	// Snapshot of the case's slot at request creation.
	Original TimeSlot `bson:"original" json:"original"`
	Reason   string   `bson:"reason,omitempty" json:"reason,omitempty"`

	Status        string     `bson:"status" json:"status"`
	AdminID       string     `bson:"admin_id,omitempty" json:"adminId,omitempty"`
	AdminComments string     `bson:"admin_comments,omitempty" json:"adminComments,omitempty"`
	RespondedAt   *time.Time `bson:"responded_at,omitempty" json:"respondedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// AdminRescheduleProposal status values.
const (
	ProposalStatusOpen      = "open"
	ProposalStatusConfirmed = "confirmed"
	ProposalStatusWithdrawn = "withdrawn"
)

// AdminRescheduleProposal is the admin-initiated counterpart: the admin
// offers alternate slots and the attorney selects exactly one. A slot that
// got claimed between offer and selection is rejected at selection time
// while the remaining offers stay selectable.
type AdminRescheduleProposal struct {
	ID      string `bson:"id" json:"id"`
	CaseID  string `bson:"case_id" json:"caseId"`
	AdminID string `bson:"admin_id" json:"adminId"`

	OfferedSlots []TimeSlot `bson:"offered_slots" json:"offeredSlots"`

	Status      string     `bson:"status" json:"status"`
	ChosenSlot  *TimeSlot  `bson:"chosen_slot,omitempty" json:"chosenSlot,omitempty"`
	RespondedAt *time.Time `bson:"responded_at,omitempty" json:"respondedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Offers reports whether the proposal still offers the given slot.
func (p *AdminRescheduleProposal) Offers(slot TimeSlot) bool {
	for _, s := range p.OfferedSlots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
