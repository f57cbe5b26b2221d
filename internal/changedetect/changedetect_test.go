package changedetect_test

import (
	"testing"

	"eventkernel/internal/changedetect"
	"eventkernel/internal/eventmodel"
)

func TestDetectChangeTypeRequiresBothSignalAndTarget(t *testing.T) {
	record := &eventmodel.EventRecord{ChosenDate: "2026-09-01"}

	// Revision signal but no bound target: not a change.
	result := changedetect.DetectChangeType(record, changedetect.DetectionInput{
		MessageText: "Actually, I have a question about the venue.",
	})
	if result.IsChange {
		t.Fatalf("expected no change without a bound target, got %+v", result)
	}

	// Bound target but no revision signal: not a change.
	result = changedetect.DetectChangeType(record, changedetect.DetectionInput{
		MessageText: "2026-10-05 works for us.",
		UserInfo:    map[string]any{"date": "2026-10-05"},
	})
	if result.IsChange {
		t.Fatalf("expected no change without a revision signal, got %+v", result)
	}
}

func TestDetectChangeTypeDateChange(t *testing.T) {
	record := &eventmodel.EventRecord{ChosenDate: "2026-09-01"}
	result := changedetect.DetectChangeType(record, changedetect.DetectionInput{
		MessageText: "Actually, can we change the date to 2026-10-05 instead?",
		UserInfo:    map[string]any{"date": "2026-10-05"},
	})
	if !result.IsChange || result.ChangeType != changedetect.ChangeDate {
		t.Fatalf("expected date change, got %+v", result)
	}
}

func TestDetectChangeTypeSuppressedDuringBillingCapture(t *testing.T) {
	record := &eventmodel.EventRecord{ChosenDate: "2026-09-01"}
	result := changedetect.DetectChangeType(record, changedetect.DetectionInput{
		MessageText:          "Actually change the date to 2026-10-05",
		UserInfo:             map[string]any{"date": "2026-10-05"},
		BillingCaptureActive: true,
	})
	if result.IsChange {
		t.Fatalf("expected change suppressed during billing capture, got %+v", result)
	}
}

func TestDetectChangeTypeSiteVisitSuppressesDateOnly(t *testing.T) {
	record := &eventmodel.EventRecord{ChosenDate: "2026-09-01", LockedRoomID: "room-a"}
	result := changedetect.DetectChangeType(record, changedetect.DetectionInput{
		MessageText:     "Actually switch to Room B for the site visit",
		UserInfo:        map[string]any{"date": "2026-10-05", "room": "Room B"},
		SiteVisitActive: true,
	})
	if !result.IsChange || result.ChangeType != changedetect.ChangeRoom {
		t.Fatalf("expected room change detected even during active site visit, got %+v", result)
	}
}

func TestRouteChangeDateInvalidatesRoomEvalHash(t *testing.T) {
	record := &eventmodel.EventRecord{RoomEvalHash: "abc123", CallerStep: 0}
	decision := changedetect.RouteChangeOnUpdatedVariable(record, changedetect.ChangeDate, 4)
	if decision.NextStep != 2 || !decision.NeedsReeval {
		t.Fatalf("expected detour to step 2, got %+v", decision)
	}
	if record.RoomEvalHash != "" {
		t.Fatalf("expected room_eval_hash invalidated, got %q", record.RoomEvalHash)
	}
	if decision.UpdatedCallerStep != 4 || record.CallerStep != 4 {
		t.Fatalf("expected caller step preserved as 4, got decision=%d record=%d", decision.UpdatedCallerStep, record.CallerStep)
	}
}

func TestRouteChangePreservesDeepestCallerAcrossChainedDetours(t *testing.T) {
	record := &eventmodel.EventRecord{CallerStep: 5}
	decision := changedetect.RouteChangeOnUpdatedVariable(record, changedetect.ChangeRoom, 3)
	if record.CallerStep != 5 {
		t.Fatalf("expected deepest caller step 5 preserved, got %d", record.CallerStep)
	}
	if decision.UpdatedCallerStep != 5 {
		t.Fatalf("expected decision to report caller step 5, got %d", decision.UpdatedCallerStep)
	}
}

func TestRouteChangeRequirementsTargetsStep2WhenDateUnconfirmed(t *testing.T) {
	record := &eventmodel.EventRecord{DateConfirmed: false}
	decision := changedetect.RouteChangeOnUpdatedVariable(record, changedetect.ChangeRequirements, 3)
	if decision.NextStep != 2 {
		t.Fatalf("expected requirements change to target step 2 when date unconfirmed, got %d", decision.NextStep)
	}
}

func TestRouteChangeClearsNegotiationPendingDecisionOnBackwardDetour(t *testing.T) {
	record := &eventmodel.EventRecord{NegotiationPendingDecision: "counter_offered", DateConfirmed: true}
	decision := changedetect.RouteChangeOnUpdatedVariable(record, changedetect.ChangeRoom, 5)
	if decision.NextStep != 3 {
		t.Fatalf("expected room change to target step 3, got %d", decision.NextStep)
	}
	if record.NegotiationPendingDecision != "" {
		t.Fatalf("expected stale negotiation decision cleared on backward detour, got %q", record.NegotiationPendingDecision)
	}
}
