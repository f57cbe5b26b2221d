package classify

import "eventkernel/internal/adapters"

// Classification is the merged result of all three tiers: the cheap
// keyword/regex gates, the deterministic Q&A/intent classifier, and (when
// those are inconclusive) the LLM adapter fallback.
type Classification struct {
	// Primary is the resolved intent label driving step routing.
	Primary adapters.IntentLabel
	// Secondary lists any additional Q&A sub-types detected alongside
	// Primary, for informational responses that ride along a routed reply.
	Secondary []string
	// StepAnchor names the workflow step a Q&A-only message should be
	// answered against without advancing the thread, or "" if none applies.
	StepAnchor string
	// WantsResume records whether the message asked to pick the workflow
	// back up after a manager interjection or pause.
	WantsResume bool
	// AgentIntent and AgentConfidence come from the LLM adapter when its
	// fallback tier ran; AgentConfidence is 0 and AgentIntent is "" when it
	// did not need to run.
	AgentIntent     adapters.IntentLabel
	AgentConfidence float64
	// NeedsConfidenceGate is true when the message could not be resolved
	// with enough confidence: it carries no workflow signal and is not
	// gibberish, or the LLM tier was needed but is not configured, failed,
	// or returned a confidence below the nonsense threshold. Such a message
	// should be deferred to manager review instead of auto-routed.
	NeedsConfidenceGate bool
	// Ignored is true when the nonsense gate classified the message as
	// gibberish with no workflow signal: it should be silently dropped.
	Ignored bool
}

var resumePhrases = []string{
	"let's continue", "lets continue", "please continue", "go back to",
	"back to the booking", "resume the booking", "continue with the booking",
	"pick up where we left off", "where were we",
}

func mentionsResume(normalized string) bool {
	return matchesAny(normalized, resumePhrases)
}
