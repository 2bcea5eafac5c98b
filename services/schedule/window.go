package schedule

import (
	"math"
	"time"

	"courtflow/models"
)

// WarRoomLeadMinutes is how long before the trial instant the war room
// opens. The window is closed-closed: open exactly at T-60, closed strictly
// after T-0.
const WarRoomLeadMinutes = 60

// MinutesUntilTrial returns whole minutes from now until the trial instant,
// floored toward negative infinity so any instant past T-0 reads negative.
// Both arguments must be UTC instants; no two times are compared otherwise.
func MinutesUntilTrial(nowUTC, trialUTC time.Time) int {
	return int(math.Floor(trialUTC.Sub(nowUTC).Minutes()))
}

// WarRoomOpen reports whether the war room is open at the given instant.
func WarRoomOpen(nowUTC, trialUTC time.Time) bool {
	m := MinutesUntilTrial(nowUTC, trialUTC)
	return m >= 0 && m <= WarRoomLeadMinutes
}

// DueThresholds returns the reminder thresholds due at the given instant:
// those whose lead time has elapsed and whose flag has not fired yet.
// Farthest threshold first.
func DueThresholds(nowUTC, trialUTC time.Time, state models.ReminderState) []models.ReminderThreshold {
	m := MinutesUntilTrial(nowUTC, trialUTC)
	if m < 0 {
		return nil
	}

	var due []models.ReminderThreshold
	for _, t := range models.ReminderThresholds() {
		if m <= t.Minutes() && !state.Sent(t) {
			due = append(due, t)
		}
	}
	return due
}
