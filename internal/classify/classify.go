package classify

import (
	"context"

	"eventkernel/internal/adapters"
)

// Classifier runs the three-tier classification pipeline from spec §4.8
// over an inbound message: cheap keyword/regex gates first, the
// deterministic Q&A/confirmation tables second, and the LLM adapter only
// when those two tiers leave the message unresolved.
type Classifier struct {
	llm               adapters.LLMClassifier
	nonsenseThreshold float64
}

// New builds a Classifier. llm may be nil, in which case tier 3 never runs
// and an unresolved message always falls through to NeedsConfidenceGate.
func New(llm adapters.LLMClassifier, nonsenseThreshold float64) *Classifier {
	return &Classifier{llm: llm, nonsenseThreshold: nonsenseThreshold}
}

// stepAnchorByCurrentStep names the step a Q&A-only reply should be
// anchored against when the message itself named no step anchor, keyed by
// the thread's current step.
var stepAnchorByCurrentStep = map[int]string{
	2: "Date Confirmation",
	3: "Room Availability",
	4: "Offer Review",
	5: "Site Visit",
	7: "Follow-Up",
}

// Classify resolves a single message into a Classification. It never
// returns an error of its own; the error return surfaces only a tier-3 LLM
// adapter failure, in which case the caller receives the best result the
// first two tiers could produce.
func (c *Classifier) Classify(ctx context.Context, message string, cctx adapters.ClassificationContext) (Classification, error) {
	normalized := NormalizeText(message)
	if normalized == "" {
		return Classification{Ignored: true}, nil
	}

	workflowSignal := HasWorkflowSignal(message)
	if !workflowSignal && IsGibberish(message) {
		return Classification{Ignored: true}, nil
	}

	result := Classification{
		WantsResume: mentionsResume(normalized) || cctx.ExpectResume,
	}

	if LooksLikeManagerRequest(normalized) {
		result.Primary = adapters.IntentMessageManager
		return result, nil
	}

	qnaTypes := DetectQnATypes(normalized)
	result.Secondary = qnaTypes

	confirmation := MatchConfirmation(normalized)
	if confirmation.IsMatch {
		result.Primary = confirmIntentForStep(cctx.CurrentStep, confirmation)
		if len(qnaTypes) > 0 {
			result.StepAnchor = stepAnchorFromQnA(qnaTypes)
		}
		return result, nil
	}

	if len(qnaTypes) > 0 {
		result.StepAnchor = stepAnchorFromQnA(qnaTypes)
		if result.StepAnchor == "" {
			result.StepAnchor = stepAnchorByCurrentStep[cctx.CurrentStep]
		}
		if SpansMultipleSteps(qnaTypes) {
			result.Primary = adapters.IntentNonEvent
		}
		return result, nil
	}

	if HasRoomMention(normalized) {
		result.Primary = adapters.IntentEditRoom
		return result, nil
	}
	if HasDateAnchor(normalized) {
		result.Primary = adapters.IntentEditDate
		return result, nil
	}
	if HasBillingToken(normalized) {
		result.Primary = adapters.IntentEditRequirements
		return result, nil
	}

	if !workflowSignal {
		result.NeedsConfidenceGate = true
		return result, nil
	}

	if c.llm == nil {
		result.NeedsConfidenceGate = true
		return result, nil
	}

	agent, err := c.llm.Classify(ctx, message, cctx)
	if err != nil {
		result.NeedsConfidenceGate = true
		return result, err
	}
	result.AgentIntent = agent.Label
	result.AgentConfidence = agent.Confidence
	result.Primary = agent.Label
	if agent.Confidence < c.nonsenseThreshold {
		result.NeedsConfidenceGate = true
	}
	return result, nil
}

func confirmIntentForStep(currentStep int, match ConfirmationMatch) adapters.IntentLabel {
	if currentStep == 2 {
		if match.Confidence >= 0.85 {
			return adapters.IntentConfirmDate
		}
		return adapters.IntentConfirmDatePartial
	}
	return adapters.IntentEventRequest
}
