package turn

import (
	"testing"
	"time"

	"eventkernel/internal/eventmodel"
)

func fixedResolveNow() time.Time { return time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC) }

func TestResolveEventReusesMatchingInProgressEvent(t *testing.T) {
	db := eventmodel.NewDatabase()
	existing := db.CreateEventEntry("client@example.com", "thread-1", fixedResolveNow())
	existing.ChosenDate = "2026-10-12"

	record, created := resolveEvent(db, Inbound{ClientEmail: "client@example.com", ThreadID: "thread-2"}, fixedResolveNow())

	if created {
		t.Fatal("expected the existing in-progress event to be reused")
	}
	if record.EventID != existing.EventID {
		t.Fatalf("expected event %s, got %s", existing.EventID, record.EventID)
	}
	if record.ThreadID != "thread-2" {
		t.Fatalf("expected thread ID to update to the new inbound thread, got %s", record.ThreadID)
	}
}

func TestResolveEventStartsFreshOnDifferentNamedDate(t *testing.T) {
	db := eventmodel.NewDatabase()
	existing := db.CreateEventEntry("client@example.com", "thread-1", fixedResolveNow())
	existing.ChosenDate = "2026-10-12"

	record, created := resolveEvent(db, Inbound{
		ClientEmail: "client@example.com",
		ThreadID:    "thread-2",
		UserInfo:    map[string]any{"date": "2026-11-01"},
	}, fixedResolveNow())

	if !created {
		t.Fatal("expected a new event for a conflicting named date")
	}
	if record.EventID == existing.EventID {
		t.Fatal("expected a distinct event ID from the prior booking")
	}
}

func TestResolveEventStartsFreshWhenSiteVisitInProgress(t *testing.T) {
	db := eventmodel.NewDatabase()
	existing := db.CreateEventEntry("client@example.com", "thread-1", fixedResolveNow())
	existing.SiteVisit.Status = eventmodel.SiteVisitScheduled

	record, created := resolveEvent(db, Inbound{ClientEmail: "client@example.com", ThreadID: "thread-2"}, fixedResolveNow())

	if !created {
		t.Fatal("expected a new event while a site visit is already in progress")
	}
	if record.EventID == existing.EventID {
		t.Fatal("expected a distinct event ID from the prior booking")
	}
}

func TestResolveEventStartsFreshAfterTerminalStatus(t *testing.T) {
	db := eventmodel.NewDatabase()
	existing := db.CreateEventEntry("client@example.com", "thread-1", fixedResolveNow())
	existing.Status = eventmodel.StatusConfirmed

	record, created := resolveEvent(db, Inbound{ClientEmail: "client@example.com", ThreadID: "thread-2"}, fixedResolveNow())

	if !created {
		t.Fatal("expected a new event once the prior one reached a terminal status")
	}
	if record.EventID == existing.EventID {
		t.Fatal("expected a distinct event ID from the prior booking")
	}
}
