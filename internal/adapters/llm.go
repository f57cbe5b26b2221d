package adapters

import "context"

// IntentLabel is the closed set of labels the LLM adapter may return for a
// message, mirroring original_source's IntentLabel vocabulary.
type IntentLabel string

const (
	IntentEventRequest       IntentLabel = "event_request"
	IntentConfirmDate        IntentLabel = "confirm_date"
	IntentConfirmDatePartial IntentLabel = "confirm_date_partial"
	IntentEditDate           IntentLabel = "edit_date"
	IntentEditRoom           IntentLabel = "edit_room"
	IntentEditRequirements   IntentLabel = "edit_requirements"
	IntentMessageManager     IntentLabel = "message_manager"
	IntentNonEvent           IntentLabel = "non_event"
)

// ExtractedFields holds the structured facts the LLM pulled out of a
// message, consumed by internal/capture's FieldSpec table.
type ExtractedFields map[string]any

// ClassificationResult is the LLM adapter's pure-function output: a label,
// a confidence in [0,1], and whatever structured fields it extracted
// (spec's "Out of scope" LLM adapter framing: "(message, context) →
// (label, confidence, extracted_fields)").
type ClassificationResult struct {
	Label      IntentLabel
	Confidence float64
	Fields     ExtractedFields
}

// LLMClassifier classifies a message's intent and extracts structured
// fields. Implementations must be safe to call concurrently; the kernel
// treats every call as blocking I/O (spec §5 "Scheduling model").
type LLMClassifier interface {
	Classify(ctx context.Context, message string, context ClassificationContext) (ClassificationResult, error)
}

// ClassificationContext carries the turn state the LLM adapter may use to
// disambiguate a message (current step, whether a yes/no resume is expected).
type ClassificationContext struct {
	CurrentStep  int
	ExpectResume bool
}

// DeterministicClassifier is a fixed-keyword LLMClassifier fake used in tests
// and when no LLM is configured. It never returns an error and degrades to
// IntentNonEvent with zero confidence for anything it doesn't recognize,
// matching original_source's _agent_route exception fallback.
type DeterministicClassifier struct {
	// Responses maps an exact, case-sensitive message to the result the
	// fake should return for it. Messages not present fall back to
	// IntentNonEvent/0.0.
	Responses map[string]ClassificationResult
}

// NewDeterministicClassifier builds a classifier fake seeded with canned
// responses.
func NewDeterministicClassifier(responses map[string]ClassificationResult) *DeterministicClassifier {
	return &DeterministicClassifier{Responses: responses}
}

func (d *DeterministicClassifier) Classify(_ context.Context, message string, _ ClassificationContext) (ClassificationResult, error) {
	if d != nil {
		if result, ok := d.Responses[message]; ok {
			return result, nil
		}
	}
	return ClassificationResult{Label: IntentNonEvent, Confidence: 0}, nil
}
