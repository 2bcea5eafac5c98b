package models

import "time"

// ReminderThreshold is a fixed lead time, in days, before the trial instant
// at which exactly one reminder must fire.
type ReminderThreshold int

const (
	ReminderFourDays  ReminderThreshold = 4
	ReminderThreeDays ReminderThreshold = 3
	ReminderTwoDays   ReminderThreshold = 2
	ReminderOneDay    ReminderThreshold = 1
)

// ReminderThresholds returns all thresholds, farthest first.
func ReminderThresholds() []ReminderThreshold {
	return []ReminderThreshold{ReminderFourDays, ReminderThreeDays, ReminderTwoDays, ReminderOneDay}
}

// Minutes returns the threshold's lead time in minutes.
func (t ReminderThreshold) Minutes() int {
	return int(t) * 24 * 60
}

// Field returns the flag field name inside ReminderState, used to build the
// compare-and-swap update path.
func (t ReminderThreshold) Field() string {
	switch t {
	case ReminderFourDays:
		return "d4"
	case ReminderThreeDays:
		return "d3"
	case ReminderTwoDays:
		return "d2"
	default:
		return "d1"
	}
}

// ReminderState carries the per-threshold sent flags for a case. Flags only
// move false to true between reschedules; a successful reschedule approval
// resets the whole state.
type ReminderState struct {
	FourDay  bool `bson:"d4" json:"d4"`
	ThreeDay bool `bson:"d3" json:"d3"`
	TwoDay   bool `bson:"d2" json:"d2"`
	OneDay   bool `bson:"d1" json:"d1"`
}

// Sent reports whether the reminder for the given threshold already fired.
func (s ReminderState) Sent(t ReminderThreshold) bool {
	switch t {
	case ReminderFourDays:
		return s.FourDay
	case ReminderThreeDays:
		return s.ThreeDay
	case ReminderTwoDays:
		return s.TwoDay
	default:
		return s.OneDay
	}
}

// MarkSent flips the flag for the given threshold.
func (s *ReminderState) MarkSent(t ReminderThreshold) {
	switch t {
	case ReminderFourDays:
		s.FourDay = true
	case ReminderThreeDays:
		s.ThreeDay = true
	case ReminderTwoDays:
		s.TwoDay = true
	default:
		s.OneDay = true
	}
}

// ReminderDispatch records one committed reminder dispatch, returned by the
// dispatcher tick for observability.
type ReminderDispatch struct {
	CaseID       string            `json:"caseId"`
	RecipientID  string            `json:"recipientId"`
	Threshold    ReminderThreshold `json:"thresholdDays"`
	DispatchedAt time.Time         `json:"dispatchedAt"`
}
