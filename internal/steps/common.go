package steps

import (
	"eventkernel/internal/adapters"
	"eventkernel/internal/classify"
)

// preStepChecks runs the two cross-cutting interceptors spec §4.4 and
// §4.10 require before a step's own handler runs: the site-visit date
// interceptor first (it takes priority over everything else while a visit
// is being scheduled), then structural change detection. handled is true
// when either interceptor produced the turn's Result; the caller should
// return it unchanged. When handled is false, classification is returned
// alongside so the caller's own handler doesn't re-run tier 1/2 twice.
func preStepChecks(deps Dependencies, turn Turn, fromStep int) (classify.Classification, Result, bool) {
	normalized := classifyNormalized(turn.MessageText)

	if result, handled := trySiteVisitIntercept(deps, turn, normalized); handled {
		return classify.Classification{}, result, true
	}

	classification, _ := deps.Classifier.Classify(backgroundCtx, turn.MessageText, adapters.ClassificationContext{CurrentStep: fromStep})

	isGeneralQnA := classification.StepAnchor != "" && classification.Primary == ""
	isQuestion := isGeneralQnA

	acceptance := classify.MatchConfirmation(normalized)

	if result, handled := tryDetour(deps, turn, fromStep, isQuestion, isGeneralQnA, acceptance.IsMatch, acceptance.Confidence); handled {
		return classification, result, true
	}

	return classification, Result{}, false
}
