package dispatch_test

import (
	"testing"
	"time"

	"eventkernel/internal/adapters"
	"eventkernel/internal/catalog"
	"eventkernel/internal/classify"
	"eventkernel/internal/dispatch"
	"eventkernel/internal/eventmodel"
	"eventkernel/internal/steps"
)

func fixedNow() time.Time { return time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC) }

func newDeps(llm adapters.LLMClassifier) steps.Dependencies {
	return steps.Dependencies{
		Catalog:    catalog.New(adapters.DefaultStaticCatalog()),
		Calendar:   adapters.NewInMemoryCalendar(),
		Verbalizer: adapters.DefaultTemplateVerbalizer(),
		Classifier: classify.New(llm, 0.5),
		Now:        fixedNow,
	}
}

func TestRunAdvancesThroughIntakeAndDateWithoutHalting(t *testing.T) {
	db := eventmodel.NewDatabase()
	record := db.CreateEventEntry("client@example.com", "thread-1", fixedNow())
	llm := adapters.NewDeterministicClassifier(map[string]adapters.ClassificationResult{
		"we'd like to book an event for 40 guests on 2026-10-12": {Label: adapters.IntentEventRequest, Confidence: 0.95},
	})
	deps := newDeps(llm)
	turn := steps.Turn{
		DB:          db,
		Record:      record,
		MessageText: "we'd like to book an event for 40 guests on 2026-10-12",
		UserInfo:    map[string]any{"participants": 40, "date": "2026-10-12"},
		ThreadID:    "thread-1",
	}

	result := dispatch.Run(deps, turn, dispatch.DefaultMaxIterations)

	if record.CurrentStep < 2 {
		t.Fatalf("expected dispatcher to advance past intake, got step %d", record.CurrentStep)
	}
	_ = result
}

func TestRunStopsAtUnrecognizedStep(t *testing.T) {
	db := eventmodel.NewDatabase()
	record := db.CreateEventEntry("client@example.com", "thread-2", fixedNow())
	record.CurrentStep = 99
	deps := newDeps(nil)
	turn := steps.Turn{DB: db, Record: record, MessageText: "hello", ThreadID: "thread-2"}

	result := dispatch.Run(deps, turn, dispatch.DefaultMaxIterations)

	if result.Halt {
		t.Fatal("expected zero-value result, not a halting one, for an unrecognized step")
	}
}

func TestRunFollowsRerouteFromNegotiationBackToRoomStep(t *testing.T) {
	db := eventmodel.NewDatabase()
	record := db.CreateEventEntry("client@example.com", "thread-3", fixedNow())
	record.CurrentStep = 5
	record.Status = eventmodel.StatusLead
	record.ChosenDate = "2026-10-12"
	record.LockedRoomID = "Room A"
	record.Requirements = eventmodel.Requirements{Participants: 40}
	deps := newDeps(nil)
	turn := steps.Turn{
		DB:          db,
		Record:      record,
		MessageText: "actually, could we use Room B instead?",
		UserInfo:    map[string]any{"room": "Room B"},
		ThreadID:    "thread-3",
	}

	dispatch.Run(deps, turn, dispatch.DefaultMaxIterations)

	if record.CurrentStep == 5 {
		t.Fatal("expected a room-selection reroute to move the turn off step 5")
	}
}
