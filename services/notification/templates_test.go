package notification_test

import (
	"testing"

	"courtflow/services/notification"

	"github.com/stretchr/testify/assert"
)

func TestRenderKnownTemplates(t *testing.T) {
	title, body := notification.Render(notification.TemplateRescheduleRejected, map[string]string{
		"caseNumber": "SC-42",
		"reason":     "docket conflict",
	})
	assert.Equal(t, "Reschedule rejected", title)
	assert.Contains(t, body, "SC-42")
	assert.Contains(t, body, "docket conflict")

	title, body = notification.Render(notification.TemplateTrialReminder, map[string]string{
		"caseNumber": "SC-42",
		"days":       "3",
	})
	assert.Equal(t, "Upcoming trial", title)
	assert.Contains(t, body, "3 day(s)")

	title, _ = notification.Render(notification.TemplateCaseReopened, map[string]string{"caseNumber": "SC-42"})
	assert.Equal(t, "Case reopened for applications", title)
}

func TestRenderUnknownTemplateFallsBack(t *testing.T) {
	title, body := notification.Render("no.such.template", map[string]string{"caseNumber": "SC-42"})
	assert.Equal(t, "Case update", title)
	assert.Contains(t, body, "SC-42")
}

func TestDedupeKeyShape(t *testing.T) {
	key := notification.DedupeKey("case-1", "reopened:evt-9", "juror-a")
	assert.Equal(t, "notify:case-1:reopened:evt-9:juror-a", key)
}
