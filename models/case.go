package models

import (
	"fmt"
	"time"
)

// Case status values.
const (
	CaseStatusAwaitingTrial       = "awaiting_trial"
	CaseStatusOpenForApplications = "open_for_applications"
	CaseStatusResolved            = "resolved"
	CaseStatusDismissed           = "dismissed"
)

// Case represents a small-claims case with its scheduled trial slot.
type Case struct {
	ID           string `bson:"id" json:"id"`
	CaseNumber   string `bson:"case_number" json:"caseNumber"`
	Jurisdiction string `bson:"jurisdiction" json:"jurisdiction"` // bookable resource pool
	AttorneyID   string `bson:"attorney_id" json:"attorneyId"`
	Title        string `bson:"title" json:"title"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`

	ScheduledDate string `bson:"scheduled_date" json:"scheduledDate"` // "2006-01-02"
	ScheduledTime string `bson:"scheduled_time" json:"scheduledTime"` // "15:04"
	// Fixed offset east of UTC, in minutes. The stored date and time are
	// local to this offset; every comparison happens after normalizing to UTC.
	TZOffsetMinutes int `bson:"tz_offset_minutes" json:"tzOffsetMinutes"`

	Status    string        `bson:"status" json:"status"`
	Reminders ReminderState `bson:"reminders" json:"reminders"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ScheduledStatuses lists the statuses in which a case holds a trial slot.
// A case reopened for applications keeps its slot, its place in the
// jurisdiction pool and its reminder pipeline; only terminal cases release
// the slot.
func ScheduledStatuses() []string {
	return []string{CaseStatusAwaitingTrial, CaseStatusOpenForApplications}
}

// Slot returns the case's scheduled slot as a comparable value.
func (c *Case) Slot() TimeSlot {
	return TimeSlot{Date: c.ScheduledDate, Time: c.ScheduledTime}
}

// TrialInstantUTC normalizes the stored local date, time and fixed offset
// into a UTC instant.
func (c *Case) TrialInstantUTC() (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", c.ScheduledDate+" "+c.ScheduledTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("case %s has malformed schedule %q %q: %w",
			c.ID, c.ScheduledDate, c.ScheduledTime, err)
	}
	loc := time.FixedZone("", c.TZOffsetMinutes*60)
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	return local.UTC(), nil
}

// CaseWindow reports the war-room gate for a case at a given instant.
type CaseWindow struct {
	CaseID            string `json:"caseId"`
	WarRoomOpen       bool   `json:"warRoomOpen"`
	MinutesUntilTrial int    `json:"minutesUntilTrial"`
}
