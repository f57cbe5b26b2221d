package steps

import (
	"fmt"

	"eventkernel/internal/adapters"
	"eventkernel/internal/eventmodel"
)

var confirmTokens = []string{"confirm", "go ahead", "yes please", "looks good", "sounds good"}
var depositPaidTokens = []string{"paid the deposit", "deposit is paid", "sent the deposit", "transferred the deposit", "deposit_just_paid"}
var reserveTokens = []string{"hold the date", "put it on hold", "reserve", "tentative"}
var questionTokens = []string{"?", "what time", "how much", "could you tell me"}

type confirmationIntent string

// confirmationSiteVisit is not classified here: the shared site-visit
// interceptor in preStepChecks (spec §4.10) claims any message that starts
// or continues a visit flow before this step's own switch ever runs.
const (
	confirmationConfirm     confirmationIntent = "confirm"
	confirmationDepositPaid confirmationIntent = "deposit_paid"
	confirmationReserve     confirmationIntent = "reserve"
	confirmationDecline     confirmationIntent = "decline"
	confirmationChange      confirmationIntent = "change"
	confirmationQuestion    confirmationIntent = "question"
)

func classifyConfirmation(normalized string, extras map[string]any) confirmationIntent {
	if extras != nil {
		if paid, _ := extras["deposit_just_paid"].(bool); paid {
			return confirmationDepositPaid
		}
	}
	switch {
	case matchesAny(normalized, depositPaidTokens):
		return confirmationDepositPaid
	case matchesAny(normalized, declineTokens):
		return confirmationDecline
	case matchesAny(normalized, reserveTokens):
		return confirmationReserve
	case matchesAny(normalized, confirmTokens):
		return confirmationConfirm
	case matchesAny(normalized, questionTokens):
		return confirmationQuestion
	default:
		return confirmationChange
	}
}

// Step7 runs final confirmation (spec §4.3.7). preStepChecks still applies:
// a structural change routes back through the DAG router, and an active or
// newly-started site visit is intercepted before any of this step's own
// classification runs.
func Step7(deps Dependencies, turn Turn) Result {
	record := turn.Record

	if classification, result, handled := preStepChecks(deps, turn, 7); handled {
		_ = classification
		return result
	}

	record.CurrentStep = 7
	normalized := classifyNormalized(turn.MessageText)
	intent := classifyConfirmation(normalized, turn.UserInfo)

	switch intent {
	case confirmationDepositPaid:
		record.Deposit.Paid = true
		now := deps.now()
		record.Deposit.PaidAt = &now
		return finalizeConfirmation(deps, turn)
	case confirmationConfirm:
		return finalizeConfirmation(deps, turn)
	case confirmationReserve:
		return reserveOption(deps, turn)
	case confirmationDecline:
		record.Status = eventmodel.StatusCancelled
		record.ThreadState = eventmodel.ThreadInProgress
		record.AppendAudit(7, 7, "booking_declined", "system", deps.now())
		return draftResult("confirmation_declined", "Understood — I've cancelled this booking. Let me know if anything changes.", "cancellation", false, true)
	case confirmationQuestion:
		return draftResult("confirmation_question_answered", "Happy to help — could you tell me a bit more about what you'd like to know?", "confirmation_qna", false, true)
	default:
		return draftResult("confirmation_change_noted", "Got it — let me know exactly what you'd like to change and I'll take care of it.", "confirmation_change_prompt", false, true)
	}
}

func finalizeConfirmation(deps Dependencies, turn Turn) Result {
	record := turn.Record

	room := record.LockedRoomID
	event, err := deps.Calendar.CreateEvent(backgroundCtx, adapters.CalendarEventInput{
		EventID: record.EventID, Title: fmt.Sprintf("Event — %s", room), DateISO: record.ChosenDate, RoomID: room, Kind: "confirmed",
	})
	if err != nil {
		record.AppendLog("calendar create_event failed on confirmation: "+err.Error(), deps.now())
	} else {
		record.AppendLog("calendar block created: "+event.ID, deps.now())
	}

	record.Status = eventmodel.StatusConfirmed
	record.GatekeeperPassed["step7"] = true
	record.ThreadState = eventmodel.ThreadInProgress
	record.AppendAudit(7, 7, "booking_confirmed", "system", deps.now())
	notifyIfSiteVisitOverlap(turn)

	body, renderErr := deps.Verbalizer.Render(backgroundCtx, "confirmation_thanks", map[string]string{"date": record.ChosenDate, "room": room})
	if renderErr != nil {
		body = "You're all set — " + record.ChosenDate + " in " + room + " is confirmed. Thank you!"
	}
	return draftResult("booking_confirmed", body, "confirmation_thanks", false, true)
}

func reserveOption(deps Dependencies, turn Turn) Result {
	record := turn.Record
	record.Status = eventmodel.StatusOption
	dueDate := deps.now().AddDate(0, 0, depositDueDays).Format("2006-01-02")
	record.Deposit.Required = true
	record.Deposit.DueDate = dueDate
	record.GatekeeperPassed["step7"] = true
	record.AppendAudit(7, 7, "booking_reserved_as_option", "system", deps.now())

	room := record.LockedRoomID
	if _, err := deps.Calendar.CreateEvent(backgroundCtx, adapters.CalendarEventInput{
		EventID: record.EventID, Title: fmt.Sprintf("Option — %s", room), DateISO: record.ChosenDate, RoomID: room, Kind: "option",
	}); err != nil {
		record.AppendLog("calendar create_event failed on reserve: "+err.Error(), deps.now())
	}

	return draftResult("booking_reserved", fmt.Sprintf("I've placed a hold on %s for %s — the deposit is due by %s to lock it in.", room, record.ChosenDate, dueDate), "option_reserved", false, true)
}

// notifyIfSiteVisitOverlap enqueues a manager-notification task when the
// booked date coincides with a scheduled site visit: allowed (no hard
// block), but the manager should know (spec §4.10).
func notifyIfSiteVisitOverlap(turn Turn) {
	record := turn.Record
	if record.SiteVisit.Status != eventmodel.SiteVisitScheduled || record.SiteVisit.DateISO != record.ChosenDate {
		return
	}
	turn.DB.Tasks = append(turn.DB.Tasks, eventmodel.Task{
		TaskID:  newTaskID(),
		Type:    eventmodel.TaskTypeManualReview,
		Status:  eventmodel.TaskPending,
		EventID: record.EventID,
		Payload: map[string]any{"step_id": 7, "reason": "event_booked_on_site_visit_date", "date": record.ChosenDate},
	})
}
