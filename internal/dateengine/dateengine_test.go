package dateengine_test

import (
	"testing"
	"time"

	"eventkernel/internal/dateengine"
)

func TestGenerateCandidatesPrefersMentionedDates(t *testing.T) {
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)
	prefs := dateengine.Preferences{MentionedDates: []string{"2026-08-12"}}

	result := dateengine.GenerateCandidates(now, prefs, nil, 0)

	if len(result.Proposals) == 0 || result.Proposals[0].DateISO != "2026-08-12" {
		t.Fatalf("expected mentioned date first, got %+v", result.Proposals)
	}
}

func TestGenerateCandidatesSkipsForbiddenDates(t *testing.T) {
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)
	prefs := dateengine.Preferences{Weekdays: []time.Weekday{time.Monday}}
	forbidden := []string{"2026-08-03"} // first Monday after anchor

	result := dateengine.GenerateCandidates(now, prefs, forbidden, 0)

	for _, p := range result.Proposals {
		if p.DateISO == "2026-08-03" {
			t.Fatalf("expected forbidden date excluded, got %+v", result.Proposals)
		}
	}
}

func TestGenerateCandidatesLimitsToFive(t *testing.T) {
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	result := dateengine.GenerateCandidates(now, dateengine.Preferences{}, nil, 0)

	if len(result.Proposals) != 5 {
		t.Fatalf("expected 5 proposals, got %d", len(result.Proposals))
	}
}

func TestGenerateCandidatesEscalatesAtThirdAttempt(t *testing.T) {
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	result := dateengine.GenerateCandidates(now, dateengine.Preferences{}, nil, 2)

	if !result.NeedsHILEscalation {
		t.Fatal("expected HIL escalation flagged at attempt 2 (third overall attempt)")
	}
}

func TestGenerateCandidatesDoesNotEscalateEarly(t *testing.T) {
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	result := dateengine.GenerateCandidates(now, dateengine.Preferences{}, nil, 0)

	if result.NeedsHILEscalation {
		t.Fatal("did not expect HIL escalation on first attempt")
	}
}

func TestCheckPastDateProposesNextMatchingWeekdayNextYear(t *testing.T) {
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	result := dateengine.CheckPastDate(now, "2026-01-15")

	if !result.PendingFutureConfirmation {
		t.Fatal("expected pending future confirmation for a past date")
	}
	if result.PastDateOriginal != "2026-01-15" {
		t.Fatalf("expected original date preserved, got %q", result.PastDateOriginal)
	}
	if len(result.Proposals) != 1 {
		t.Fatalf("expected exactly one proposed replacement date, got %+v", result.Proposals)
	}
	proposed, err := time.Parse("2006-01-02", result.Proposals[0].DateISO)
	if err != nil {
		t.Fatalf("unexpected date format: %v", err)
	}
	original, _ := time.Parse("2006-01-02", "2026-01-15")
	if proposed.Weekday() != original.Weekday() {
		t.Fatalf("expected same weekday, got %v vs %v", proposed.Weekday(), original.Weekday())
	}
	if proposed.Year() != 2027 {
		t.Fatalf("expected next year, got %d", proposed.Year())
	}
}

func TestCheckPastDateIgnoresFutureDates(t *testing.T) {
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	result := dateengine.CheckPastDate(now, "2026-12-01")

	if result.PendingFutureConfirmation {
		t.Fatal("did not expect pending future confirmation for a future date")
	}
}

func TestWeekdayNameLocalization(t *testing.T) {
	day := time.Monday
	if got := dateengine.WeekdayName(day, "de"); got != "Montag" {
		t.Fatalf("expected Montag, got %q", got)
	}
	if got := dateengine.WeekdayName(day, "en"); got != "Monday" {
		t.Fatalf("expected Monday, got %q", got)
	}
	if got := dateengine.WeekdayName(day, ""); got != "Monday" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}

func TestRenderProposalsProducesParallelProseAndRows(t *testing.T) {
	proposals := []dateengine.Proposal{
		{DateISO: "2026-08-10", TimeSlot: "18:00-22:00"},
		{DateISO: "2026-08-12", TimeSlot: "18:00-22:00"},
	}

	prose, rows := dateengine.RenderProposals(proposals, "en")

	if len(rows) != 2 {
		t.Fatalf("expected 2 action rows, got %d", len(rows))
	}
	if rows[0].DateISO != "2026-08-10" || rows[0].Action != "select_candidate_date" {
		t.Fatalf("unexpected action row: %+v", rows[0])
	}
	if prose == "" {
		t.Fatal("expected non-empty prose rendering")
	}
}
