package steps

import (
	"regexp"
	"strings"
	"time"

	"eventkernel/internal/dateengine"
	"eventkernel/internal/eventmodel"
	"eventkernel/internal/sitevisit"
)

var yesWordRe = regexp.MustCompile(`^\s*(yes|yep|yeah|confirmed?)[.!]?\s*$`)

// Step2 runs date confirmation (spec §4.3.2). On successful finalization it
// auto-runs Step 3 inline so the room-availability result can ride along
// with the date acknowledgment in a single reply.
func Step2(deps Dependencies, turn Turn) Result {
	record := turn.Record

	if classification, result, handled := preStepChecks(deps, turn, 2); handled {
		_ = classification
		return result
	}

	record.CurrentStep = 2

	if record.PendingDateConfirmation && yesWordRe.MatchString(strings.ToLower(strings.TrimSpace(turn.MessageText))) {
		return finalizeDate(deps, turn, record.RequestedWindow.DateISO, record.RequestedWindow.Start, record.RequestedWindow.End)
	}

	isoDate, explicit := extractRequestedDate(turn.UserInfo, turn.MessageText)
	if isoDate == "" {
		return proposeCandidateDates(deps, turn)
	}

	window := resolveWindow(turn.MessageText, isoDate)
	if window.Start == "" {
		if record.PendingTimeRequest {
			window.Start, window.End = defaultWindowStart, defaultWindowEnd
		} else {
			record.PendingTimeRequest = true
			record.RequestedWindow = eventmodel.RequestedWindow{DateISO: isoDate}
			return draftResult("date_needs_time", "Got it on the date — what time window works for you?", "date_time_prompt", false, true)
		}
	}

	if past, reason := checkPastDate(deps, isoDate); past {
		return reason
	}

	if conflict := hasLockedRoomConflict(deps, record, isoDate); conflict {
		return Result{Action: "date_room_conflict", DraftBody: "That date conflicts with the room you'd selected; could you propose another date?", Halt: true}
	}

	if explicit || record.DateProposalAttempts == 0 {
		return finalizeDate(deps, turn, isoDate, window.Start, window.End)
	}

	record.PendingDateConfirmation = true
	record.RequestedWindow = eventmodel.RequestedWindow{DateISO: isoDate, Start: window.Start, End: window.End}
	return draftResult("date_pending_confirmation",
		"To confirm: "+isoDate+" from "+window.Start+" to "+window.End+" — shall I go ahead? (yes/no)",
		"date_confirmation_prompt", false, true)
}

func extractRequestedDate(userInfo map[string]any, messageText string) (isoDate string, explicit bool) {
	if userInfo != nil {
		if raw, ok := userInfo["date"].(string); ok && raw != "" {
			if normalized, ok := sitevisit.NormalizeDate(raw); ok {
				return normalized, true
			}
			return raw, true
		}
	}
	if detected := sitevisit.ExtractDateFromMessage(messageText); detected != "" {
		if normalized, ok := sitevisit.NormalizeDate(detected); ok {
			return normalized, false
		}
		return detected, false
	}
	return "", false
}

func checkPastDate(deps Dependencies, isoDate string) (bool, Result) {
	parsed, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return false, Result{}
	}
	if !parsed.Before(deps.now()) {
		return false, Result{}
	}
	check := dateengine.CheckPastDate(deps.now(), isoDate)
	prose, _ := dateengine.RenderProposals(check.Proposals, "en")
	return true, Result{
		Action:    "date_in_past",
		DraftBody: "That date is in the past — would you like to move to the next matching weekday next year?\n" + prose,
		Topic:     "past_date_confirmation",
		Halt:      true,
	}
}

func hasLockedRoomConflict(deps Dependencies, record *eventmodel.EventRecord, isoDate string) bool {
	if record.LockedRoomID == "" || deps.Calendar == nil {
		return false
	}
	conflict, err := deps.Calendar.HasConflict(backgroundCtx, isoDate, record.EventID)
	if err != nil {
		return false
	}
	return conflict
}

func proposeCandidateDates(deps Dependencies, turn Turn) Result {
	record := turn.Record
	attempt := record.DateProposalAttempts
	record.DateProposalAttempts++

	forbidden := append([]string(nil), record.DateProposalHistory...)
	result := dateengine.GenerateCandidates(deps.now(), dateengine.Preferences{}, forbidden, attempt)

	for _, p := range result.Proposals {
		record.DateProposalHistory = append(record.DateProposalHistory, p.DateISO)
	}
	record.CandidateDates = proposalDates(result.Proposals)

	prose, _ := dateengine.RenderProposals(result.Proposals, record.Language)

	if result.NeedsHILEscalation {
		task := eventmodel.Task{
			TaskID:  newTaskID(),
			Type:    eventmodel.TaskTypeManualReview,
			Status:  eventmodel.TaskPending,
			EventID: record.EventID,
			Payload: map[string]any{"step_id": 2, "reason": "date_proposal_exhausted"},
		}
		turn.DB.Tasks = append(turn.DB.Tasks, task)
		record.ThreadState = eventmodel.ThreadAwaitingManagerReview
		return Result{
			Action: "date_escalated_to_hil", DraftBody: "I wasn't able to find a date that works — I've looped in our team to help.",
			Topic: "date_escalation", Halt: true, ManualReviewTaskID: task.TaskID,
		}
	}

	return draftResult("date_candidates_proposed", "I couldn't quite place the date you meant — here are some options:\n"+prose, "candidate_dates", false, true)
}

func proposalDates(proposals []dateengine.Proposal) []string {
	out := make([]string, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, p.DateISO)
	}
	return out
}

func finalizeDate(deps Dependencies, turn Turn, isoDate, start, end string) Result {
	record := turn.Record
	record.ChosenDate = isoDate
	record.DateConfirmed = true
	record.RequestedWindow = eventmodel.RequestedWindow{DateISO: isoDate, Start: start, End: end}
	record.PendingDateConfirmation = false
	record.PendingTimeRequest = false
	record.GatekeeperPassed["step2"] = true
	record.AppendAudit(2, 3, "date_confirmed", "system", deps.now())
	record.CurrentStep = 3

	dateAck, _ := deps.Verbalizer.Render(backgroundCtx, "date_acknowledged", map[string]string{"date": isoDate})
	if dateAck == "" {
		dateAck = "Got it, " + isoDate + " confirmed."
	}

	roomResult := Step3(deps, turn)
	combined := dateAck
	if roomResult.DraftBody != "" {
		combined = dateAck + " " + roomResult.DraftBody
	}
	roomResult.DraftBody = combined
	roomResult.Halt = true
	if roomResult.Action == "" {
		roomResult.Action = "date_confirmed_room_autorun"
	}
	return roomResult
}
