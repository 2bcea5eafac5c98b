package models

// TimeSlot is a (date, time) pair denoting a trial occurrence, drawn from
// the shared pool of a jurisdiction. Slots are compared by value.
type TimeSlot struct {
	Date string `bson:"date" json:"date" binding:"required"` // "2006-01-02"
	Time string `bson:"time" json:"time" binding:"required"` // "15:04"
}

// Equal reports whether two slots denote the same occurrence.
func (s TimeSlot) Equal(o TimeSlot) bool {
	return s == o
}

func (s TimeSlot) String() string {
	return s.Date + " " + s.Time
}
