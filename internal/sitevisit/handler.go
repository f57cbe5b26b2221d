package sitevisit

import (
	"fmt"
	"strings"
	"time"

	"eventkernel/internal/eventmodel"
)

// Outcome is the client-facing result of handling a site-visit request or
// reply, mirroring the GroupResult shape site_visit_handler.py's functions
// return (action/body/requires_approval), minus the fields that belong to
// the dispatcher (persist flags, thread-state transitions are
// left to the caller, which already owns the event record).
type Outcome struct {
	Action           string
	Body             string
	Topic            string
	RequiresApproval bool
}

// HandleRequest is the entry point for site-visit handling from any
// workflow step 2-7. detectedDate, when non-empty, is a date the caller's
// detection layer already extracted from the message. Mirrors
// handle_site_visit_request.
func HandleRequest(record *eventmodel.EventRecord, blockedDates []string, messageText, detectedDate string, now time.Time) Outcome {
	switch record.SiteVisit.Status {
	case eventmodel.SiteVisitIdle, eventmodel.SiteVisitCompleted, eventmodel.SiteVisitCancelled:
		return startSiteVisit(record, blockedDates, detectedDate, now)
	case eventmodel.SiteVisitDatePending:
		return handleDateSelection(record, blockedDates, messageText, detectedDate, now)
	case eventmodel.SiteVisitScheduled:
		return alreadyScheduled(record)
	}
	return Outcome{}
}

func startSiteVisit(record *eventmodel.EventRecord, blockedDates []string, detectedDate string, now time.Time) Outcome {
	StartFlow(&record.SiteVisit, record.CurrentStep)

	if detectedDate != "" {
		return checkDateConflict(record, blockedDates, detectedDate, now)
	}
	return offerDateSlots(record, blockedDates, now)
}

func offerDateSlots(record *eventmodel.EventRecord, blockedDates []string, now time.Time) Outcome {
	slots := GenerateSlots(now, blockedDates)
	record.SiteVisit.ProposedSlots = slots

	body := fmt.Sprintf(
		"I'd be happy to arrange a site visit for you. Here are some available times to see our venue:\n\n%s\n\nWhich works best for you? Or let me know if you have other preferences.",
		bulletList(slots),
	)

	return Outcome{Action: "site_visit_date_selection", Body: body, Topic: "site_visit_date_selection", RequiresApproval: true}
}

func checkDateConflict(record *eventmodel.EventRecord, blockedDates []string, requestedDate string, now time.Time) Outcome {
	dateISO, ok := NormalizeDate(requestedDate)
	if !ok {
		dateISO = requestedDate
	}
	if containsDate(blockedDates, dateISO) {
		return dateConflictResponse(record, blockedDates, requestedDate, now)
	}
	SetDate(&record.SiteVisit, dateISO, "")
	return confirmSiteVisit(record, requestedDate)
}

func dateConflictResponse(record *eventmodel.EventRecord, blockedDates []string, requestedDate string, now time.Time) Outcome {
	slots := GenerateSlots(now, blockedDates)
	record.SiteVisit.ProposedSlots = slots

	body := fmt.Sprintf(
		"Unfortunately, %s isn't available for site visits as we have an event scheduled that day. Here are some alternative times:\n\n%s\n\nWould any of these work for you?",
		requestedDate, bulletList(slots),
	)

	return Outcome{Action: "site_visit_date_conflict", Body: body, Topic: "site_visit_date_conflict", RequiresApproval: true}
}

func handleDateSelection(record *eventmodel.EventRecord, blockedDates []string, messageText, detectedDate string, now time.Time) Outcome {
	slots := record.SiteVisit.ProposedSlots
	selected := ParseSlotSelection(messageText, slots)

	if selected == "" && detectedDate != "" {
		selected = detectedDate
	}
	if selected == "" {
		if extracted := ExtractDateFromMessage(messageText); extracted != "" {
			selected = extracted
		}
	}

	if selected != "" {
		dateISO, ok := NormalizeDate(dateOnlyPart(selected))
		if !ok {
			dateISO = dateOnlyPart(selected)
		}
		if containsDate(blockedDates, dateISO) {
			return dateConflictResponse(record, blockedDates, selected, now)
		}

		confirmedDate, confirmedTime := ParseSlot(selected)
		if confirmedDate != "" {
			SetDate(&record.SiteVisit, confirmedDate, confirmedTime)
			return confirmSiteVisit(record, selected)
		}
	}

	return askForDateClarification()
}

func askForDateClarification() Outcome {
	body := "I couldn't determine which date and time you'd prefer. Could you please specify when you'd like to visit? For example: 'Next Tuesday at 14:00' or 'January 15th in the morning'."
	return Outcome{Action: "site_visit_date_clarification", Body: body, Topic: "site_visit_date_clarification", RequiresApproval: true}
}

func confirmSiteVisit(record *eventmodel.EventRecord, selectedSlot string) Outcome {
	body := fmt.Sprintf("Your site visit is confirmed for **%s**. We look forward to showing you our venue!", selectedSlot)
	return Outcome{Action: "site_visit_confirmed", Body: body, Topic: "site_visit_confirmed", RequiresApproval: false}
}

func alreadyScheduled(record *eventmodel.EventRecord) Outcome {
	date := record.SiteVisit.DateISO
	display := date
	if date != "" && record.SiteVisit.TimeSlot != "" {
		display = date + " at " + record.SiteVisit.TimeSlot
	}

	body := fmt.Sprintf("You already have a site visit scheduled for **%s**. Would you like to reschedule?", display)
	return Outcome{Action: "site_visit_already_scheduled", Body: body, Topic: "site_visit_already_scheduled", RequiresApproval: true}
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func containsDate(dates []string, target string) bool {
	for _, d := range dates {
		if d == target {
			return true
		}
	}
	return false
}

// dateOnlyPart strips a trailing " at HH:MM" suffix before normalization.
func dateOnlyPart(slot string) string {
	return strings.SplitN(slot, " at ", 2)[0]
}
