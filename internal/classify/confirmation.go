package classify

import "regexp"

// ConfirmationMatch is the result of scoring a message for offer
// acceptance: whether it matches, how confident the match is, and why.
type ConfirmationMatch struct {
	IsMatch    bool
	Confidence float64
	Reason     string
}

var strongAcceptancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(we|i)\s+(accept|confirm)\s+the\s+offer\b`),
	regexp.MustCompile(`\bconfirm(ed)?\s+(booking|reservation)\b`),
	regexp.MustCompile(`\b(yes|yep|yeah),?\s+(let'?s|we'?ll)\s+(book|go ahead|proceed)\b`),
	regexp.MustCompile(`\bwe(('|')?d| would)\s+like\s+to\s+(book|confirm|proceed)\b`),
}

var weakAcceptancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(yes|yep|yeah|sounds good|perfect|great|agreed)[.!]?\s*$`),
	regexp.MustCompile(`\bthat\s+works\s+for\s+us\b`),
	regexp.MustCompile(`\blooks\s+good\b`),
}

// roomSelectionGuard matches phrasing that names a room in the context of
// choosing between options, not accepting a final offer. A message like
// "let's proceed with Room B" must not score as offer acceptance merely
// because it contains "proceed".
var roomSelectionGuard = regexp.MustCompile(`\b(proceed|go ahead|continue)\s+with\s+(room\s+[a-z]|punkt\.?\s?null)\b`)

// MatchConfirmation scores normalized text for offer-acceptance intent,
// mirroring original_source's confirmation scoring: strong phrasing wins
// outright, bare agreement words score lower confidence, and naming a room
// in a selection context suppresses the match regardless of surrounding
// acceptance words.
func MatchConfirmation(normalized string) ConfirmationMatch {
	if roomSelectionGuard.MatchString(normalized) {
		return ConfirmationMatch{IsMatch: false, Confidence: 0, Reason: "room_selection_not_offer_acceptance"}
	}
	if matchesAnyPattern(normalized, strongAcceptancePatterns) {
		return ConfirmationMatch{IsMatch: true, Confidence: 0.95, Reason: "explicit_offer_acceptance_phrase"}
	}
	if HasOfferAction(normalized) {
		return ConfirmationMatch{IsMatch: true, Confidence: 0.85, Reason: "offer_action_token"}
	}
	if matchesAnyPattern(normalized, weakAcceptancePatterns) {
		return ConfirmationMatch{IsMatch: true, Confidence: 0.55, Reason: "bare_agreement_word"}
	}
	return ConfirmationMatch{IsMatch: false, Confidence: 0, Reason: "no_acceptance_signal"}
}
