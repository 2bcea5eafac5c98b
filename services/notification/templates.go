package notification

import "fmt"

// Template IDs for the notifications this engine emits.
const (
	TemplateRescheduleRequested = "reschedule.requested"
	TemplateRescheduleApproved  = "reschedule.approved"
	TemplateRescheduleRejected  = "reschedule.rejected"
	TemplateSlotsProposed       = "reschedule.slots_proposed"
	TemplateSlotConfirmed       = "reschedule.slot_confirmed"
	TemplateCaseReopened        = "case.reopened"
	TemplateTrialReminder       = "trial.reminder"
)

// Render produces the push title and body for a template. Unknown templates
// fall back to a generic case update.
func Render(templateID string, data map[string]string) (title, body string) {
	caseNumber := data["caseNumber"]

	switch templateID {
	case TemplateRescheduleRequested:
		return "Reschedule requested",
			fmt.Sprintf("A reschedule of case %s to %s is awaiting your review.", caseNumber, data["slot"])
	case TemplateRescheduleApproved:
		return "Trial rescheduled",
			fmt.Sprintf("Your reschedule request for case %s was approved. New trial slot: %s.", caseNumber, data["slot"])
	case TemplateRescheduleRejected:
		return "Reschedule rejected",
			fmt.Sprintf("Your reschedule request for case %s was rejected: %s", caseNumber, data["reason"])
	case TemplateSlotsProposed:
		return "Alternate trial slots offered",
			fmt.Sprintf("An administrator proposed alternate slots for case %s. Please select one.", caseNumber)
	case TemplateSlotConfirmed:
		return "Trial rescheduled",
			fmt.Sprintf("Case %s has been moved to %s.", caseNumber, data["slot"])
	case TemplateCaseReopened:
		return "Case reopened for applications",
			fmt.Sprintf("Case %s was rescheduled and your juror application was withdrawn. You may apply again.", caseNumber)
	case TemplateTrialReminder:
		return "Upcoming trial",
			fmt.Sprintf("Case %s goes to trial in %s day(s).", caseNumber, data["days"])
	default:
		return "Case update", fmt.Sprintf("There is an update on case %s.", caseNumber)
	}
}
