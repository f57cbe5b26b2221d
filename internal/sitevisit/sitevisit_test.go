package sitevisit_test

import (
	"testing"
	"time"

	"eventkernel/internal/eventmodel"
	"eventkernel/internal/sitevisit"
)

func TestIsSiteVisitIntentMatchesCommonPhrasing(t *testing.T) {
	if !sitevisit.IsSiteVisitIntent("could we schedule a visit next week?") {
		t.Fatal("expected site visit intent match")
	}
	if sitevisit.IsSiteVisitIntent("can we add more catering options") {
		t.Fatal("did not expect a site visit intent match")
	}
}

func TestStartFlowGoesDirectlyToDatePending(t *testing.T) {
	record := &eventmodel.EventRecord{CurrentStep: 3}
	sitevisit.StartFlow(&record.SiteVisit, record.CurrentStep)

	if record.SiteVisit.Status != eventmodel.SiteVisitDatePending {
		t.Fatalf("expected date_pending, got %q", record.SiteVisit.Status)
	}
	if record.SiteVisit.InitiatedAtStep != 3 {
		t.Fatalf("expected initiated_at_step=3, got %d", record.SiteVisit.InitiatedAtStep)
	}
}

func TestHandleRequestOffersSlotsWhenNoDateGiven(t *testing.T) {
	record := &eventmodel.EventRecord{EventID: "evt-1", CurrentStep: 3}
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	outcome := sitevisit.HandleRequest(record, nil, "I'd like to see the venue", "", now)

	if outcome.Action != "site_visit_date_selection" {
		t.Fatalf("expected date_selection outcome, got %+v", outcome)
	}
	if len(record.SiteVisit.ProposedSlots) == 0 {
		t.Fatal("expected proposed slots to be populated")
	}
}

func TestHandleRequestBlocksDateWithExistingEvent(t *testing.T) {
	record := &eventmodel.EventRecord{EventID: "evt-2", CurrentStep: 3}
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)
	blocked := []string{"2026-08-10"}

	outcome := sitevisit.HandleRequest(record, blocked, "can we visit on 10.08.2026", "10.08.2026", now)

	if outcome.Action != "site_visit_date_conflict" {
		t.Fatalf("expected date_conflict outcome, got %+v", outcome)
	}
	if record.SiteVisit.Status != eventmodel.SiteVisitDatePending {
		t.Fatalf("expected status still date_pending after conflict, got %q", record.SiteVisit.Status)
	}
}

func TestHandleRequestConfirmsUnblockedDate(t *testing.T) {
	record := &eventmodel.EventRecord{EventID: "evt-3", CurrentStep: 3}
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)
	blocked := []string{"2026-08-10"}

	outcome := sitevisit.HandleRequest(record, blocked, "can we visit on 12.08.2026", "12.08.2026", now)

	if outcome.Action != "site_visit_confirmed" {
		t.Fatalf("expected confirmed outcome, got %+v", outcome)
	}
	if record.SiteVisit.Status != eventmodel.SiteVisitScheduled {
		t.Fatalf("expected scheduled status, got %q", record.SiteVisit.Status)
	}
	if record.SiteVisit.DateISO != "2026-08-12" {
		t.Fatalf("expected normalized ISO date, got %q", record.SiteVisit.DateISO)
	}
}

func TestHandleRequestDatePendingParsesOrdinalSelection(t *testing.T) {
	record := &eventmodel.EventRecord{EventID: "evt-4", CurrentStep: 3}
	record.SiteVisit.Status = eventmodel.SiteVisitDatePending
	record.SiteVisit.ProposedSlots = []string{"03.08.2026 at 10:00", "04.08.2026 at 14:00", "05.08.2026 at 16:00"}
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	outcome := sitevisit.HandleRequest(record, nil, "let's go with the second one", "", now)

	if outcome.Action != "site_visit_confirmed" {
		t.Fatalf("expected confirmed outcome, got %+v", outcome)
	}
	if record.SiteVisit.DateISO != "2026-08-04" || record.SiteVisit.TimeSlot != "14:00" {
		t.Fatalf("expected second slot confirmed, got date=%q time=%q", record.SiteVisit.DateISO, record.SiteVisit.TimeSlot)
	}
}

func TestHandleRequestDatePendingAsksForClarificationWhenUnparseable(t *testing.T) {
	record := &eventmodel.EventRecord{EventID: "evt-5", CurrentStep: 3}
	record.SiteVisit.Status = eventmodel.SiteVisitDatePending
	record.SiteVisit.ProposedSlots = []string{"03.08.2026 at 10:00"}
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	outcome := sitevisit.HandleRequest(record, nil, "maybe sometime soon", "", now)

	if outcome.Action != "site_visit_date_clarification" {
		t.Fatalf("expected clarification outcome, got %+v", outcome)
	}
}

func TestHandleRequestAlreadyScheduledOffersReschedule(t *testing.T) {
	record := &eventmodel.EventRecord{EventID: "evt-6", CurrentStep: 5}
	record.SiteVisit.Status = eventmodel.SiteVisitScheduled
	record.SiteVisit.DateISO = "2026-08-04"
	record.SiteVisit.TimeSlot = "14:00"

	outcome := sitevisit.HandleRequest(record, nil, "just checking in", "", time.Time{})

	if outcome.Action != "site_visit_already_scheduled" {
		t.Fatalf("expected already_scheduled outcome, got %+v", outcome)
	}
}

func TestBlockedDatesExcludesCancelledAndSelf(t *testing.T) {
	db := eventmodel.NewDatabase()
	db.Events = []eventmodel.EventRecord{
		{EventID: "a", Status: "Cancelled", RequestedWindow: eventmodel.RequestedWindow{DateISO: "2026-09-01"}},
		{EventID: "b", RequestedWindow: eventmodel.RequestedWindow{DateISO: "05.09.2026"}},
		{EventID: "c", RequestedWindow: eventmodel.RequestedWindow{DateISO: "2026-09-10"}},
	}

	blocked := sitevisit.BlockedDates(db, "c")

	if len(blocked) != 1 || blocked[0] != "2026-09-05" {
		t.Fatalf("expected only event b's normalized date, got %+v", blocked)
	}
}

func TestMarkConflictDoesNotBlockEventBooking(t *testing.T) {
	state := eventmodel.SiteVisitState{Status: eventmodel.SiteVisitScheduled, DateISO: "2026-09-05"}
	sitevisit.MarkConflict(&state)

	if !state.HasEventConflict {
		t.Fatal("expected has_event_conflict=true")
	}
	if state.Status != eventmodel.SiteVisitScheduled {
		t.Fatal("marking a conflict must not change the site visit's own status")
	}
}

func TestResetClearsAllFields(t *testing.T) {
	state := eventmodel.SiteVisitState{
		Status: eventmodel.SiteVisitScheduled, DateISO: "2026-09-05", TimeSlot: "10:00",
		ProposedSlots: []string{"a"}, InitiatedAtStep: 3, HasEventConflict: true,
	}
	sitevisit.Reset(&state)

	if state.Status != eventmodel.SiteVisitIdle || state.DateISO != "" || state.TimeSlot != "" ||
		state.ProposedSlots != nil || state.InitiatedAtStep != 0 || state.HasEventConflict {
		t.Fatalf("expected fully reset state, got %+v", state)
	}
}
