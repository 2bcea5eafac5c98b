package models_test

import (
	"testing"
	"time"

	"courtflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialInstantUTCNormalizesFixedOffset(t *testing.T) {
	cases := []struct {
		name   string
		offset int
		want   time.Time
	}{
		{"utc", 0, time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)},
		{"east of utc", 120, time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC)},
		{"west of utc", -300, time.Date(2026, 9, 14, 20, 0, 0, 0, time.UTC)},
		{"half-hour offset", 330, time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := models.Case{
				ID:              "case-1",
				ScheduledDate:   "2026-09-14",
				ScheduledTime:   "15:00",
				TZOffsetMinutes: tc.offset,
			}
			got, err := c.TrialInstantUTC()
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}
}

func TestTrialInstantUTCRejectsMalformedSchedule(t *testing.T) {
	c := models.Case{ID: "case-1", ScheduledDate: "14/09/2026", ScheduledTime: "15:00"}
	_, err := c.TrialInstantUTC()
	assert.Error(t, err)

	c = models.Case{ID: "case-1", ScheduledDate: "2026-09-14", ScheduledTime: "3pm"}
	_, err = c.TrialInstantUTC()
	assert.Error(t, err)
}

func TestSlotEquality(t *testing.T) {
	c := models.Case{ScheduledDate: "2026-09-14", ScheduledTime: "15:00"}
	assert.True(t, c.Slot().Equal(models.TimeSlot{Date: "2026-09-14", Time: "15:00"}))
	assert.False(t, c.Slot().Equal(models.TimeSlot{Date: "2026-09-14", Time: "15:01"}))
	assert.Equal(t, "2026-09-14 15:00", c.Slot().String())
}

func TestProposalOffers(t *testing.T) {
	p := models.AdminRescheduleProposal{
		OfferedSlots: []models.TimeSlot{
			{Date: "2026-09-21", Time: "10:00"},
			{Date: "2026-09-22", Time: "11:00"},
		},
	}
	assert.True(t, p.Offers(models.TimeSlot{Date: "2026-09-22", Time: "11:00"}))
	assert.False(t, p.Offers(models.TimeSlot{Date: "2026-09-23", Time: "11:00"}))
}

func TestReminderStateFlags(t *testing.T) {
	var s models.ReminderState
	for _, th := range models.ReminderThresholds() {
		assert.False(t, s.Sent(th))
	}
	s.MarkSent(models.ReminderTwoDays)
	assert.True(t, s.Sent(models.ReminderTwoDays))
	assert.False(t, s.Sent(models.ReminderOneDay))

	assert.Equal(t, 4*24*60, models.ReminderFourDays.Minutes())
	assert.Equal(t, "d1", models.ReminderOneDay.Field())
}
