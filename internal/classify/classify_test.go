package classify_test

import (
	"context"
	"testing"

	"eventkernel/internal/adapters"
	"eventkernel/internal/classify"
)

func TestClassifyIgnoresGibberishWithNoWorkflowSignal(t *testing.T) {
	c := classify.New(nil, 0.5)
	result, err := c.Classify(context.Background(), "aaaaaaaaaa", adapters.ClassificationContext{CurrentStep: 1})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !result.Ignored {
		t.Fatalf("expected gibberish message to be ignored, got %+v", result)
	}
}

func TestClassifyDefersNonGibberishOffTopicToConfidenceGate(t *testing.T) {
	c := classify.New(nil, 0.5)
	result, err := c.Classify(context.Background(), "what is your favorite color", adapters.ClassificationContext{CurrentStep: 1})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Ignored {
		t.Fatal("off-topic but coherent message should not be silently ignored")
	}
	if !result.NeedsConfidenceGate {
		t.Fatalf("expected confidence gate, got %+v", result)
	}
}

func TestClassifyDetectsManagerEscalation(t *testing.T) {
	c := classify.New(nil, 0.5)
	result, err := c.Classify(context.Background(), "I would like to speak to a manager please", adapters.ClassificationContext{CurrentStep: 3})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Primary != adapters.IntentMessageManager {
		t.Fatalf("expected IntentMessageManager, got %s", result.Primary)
	}
}

func TestClassifyRoomSelectionDoesNotScoreAsOfferAcceptance(t *testing.T) {
	c := classify.New(nil, 0.5)
	result, err := c.Classify(context.Background(), "let's proceed with Room B for the event", adapters.ClassificationContext{CurrentStep: 4})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Primary == adapters.IntentEventRequest && result.StepAnchor == "" {
		t.Fatalf("room selection should not be mistaken for an unanchored offer acceptance: %+v", result)
	}
}

func TestClassifyStrongAcceptanceAtDateStepConfirmsDate(t *testing.T) {
	c := classify.New(nil, 0.5)
	result, err := c.Classify(context.Background(), "Yes, we confirm the offer for that date", adapters.ClassificationContext{CurrentStep: 2})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Primary != adapters.IntentConfirmDate {
		t.Fatalf("expected IntentConfirmDate, got %s", result.Primary)
	}
}

func TestClassifyQnARoomFeaturesAnchorsToRoomAvailability(t *testing.T) {
	c := classify.New(nil, 0.5)
	result, err := c.Classify(context.Background(), "Does Room A have a projector and HDMI?", adapters.ClassificationContext{CurrentStep: 3})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.StepAnchor != "Room Availability" {
		t.Fatalf("expected Room Availability anchor, got %q (%+v)", result.StepAnchor, result)
	}
}

func TestClassifyFallsBackToLLMWhenTiersInconclusive(t *testing.T) {
	deterministic := adapters.NewDeterministicClassifier(map[string]adapters.ClassificationResult{
		"we want to book an event next quarter with a large team": {
			Label:      adapters.IntentEventRequest,
			Confidence: 0.9,
		},
	})
	c := classify.New(deterministic, 0.5)
	result, err := c.Classify(context.Background(), "we want to book an event next quarter with a large team", adapters.ClassificationContext{CurrentStep: 1})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Primary != adapters.IntentEventRequest {
		t.Fatalf("expected IntentEventRequest from LLM fallback, got %s", result.Primary)
	}
	if result.AgentConfidence != 0.9 {
		t.Fatalf("expected agent confidence propagated, got %v", result.AgentConfidence)
	}
}

func TestClassifyLowConfidenceLLMResultNeedsConfidenceGate(t *testing.T) {
	deterministic := adapters.NewDeterministicClassifier(nil)
	c := classify.New(deterministic, 0.5)
	result, err := c.Classify(context.Background(), "we want to book an event next quarter", adapters.ClassificationContext{CurrentStep: 1})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !result.NeedsConfidenceGate {
		t.Fatalf("expected confidence gate on low-confidence fallback, got %+v", result)
	}
}
