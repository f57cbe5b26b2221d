package classify

import (
	"regexp"
	"strings"
)

var (
	isoDatePattern      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	numericDatePattern  = regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b`)
	weekdayPattern      = regexp.MustCompile(`\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	relativeWeekPattern = regexp.MustCompile(`\b(?:next|following)\s+(?:week|month)\b`)
	weekOfPattern       = regexp.MustCompile(`\bweek\s+of\b`)
	ordinalDayPattern   = regexp.MustCompile(`\b(?:on|for)\s+\d{1,2}(?:st|nd|rd|th)?\b`)
	timeOfDayPattern    = regexp.MustCompile(`\b\d{1,2}\s*(?:am|pm|:)\b`)

	managerRequestPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(escalate|escalation)\b`),
		regexp.MustCompile(`\b(speak|talk|chat)\s+(to|with)\s+(a|the)\s+(manager|human|person)\b`),
		regexp.MustCompile(`\b(speak|talk|chat)\s+(to|with)\s+(a\s+)?real\s+person\b`),
		regexp.MustCompile(`\bneed\s+(a|the)\s+(manager|human)\b`),
		regexp.MustCompile(`\bconnect\s+me\s+with\s+(someone|a person)\b`),
	}

	actionRequestPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(book|reserve|hold|confirm|lock in|sign up|go ahead)\b`),
		regexp.MustCompile(`\b(proceed|let'?s do it|we'?ll take it)\b`),
	}
)

var monthTokens = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var roomNameTokens = []string{"room a", "room b", "room c", "punkt.null", "punkt null"}

var availabilityTokens = []string{
	"available", "availability", "free on", "open on", "vacancy", "vacant",
}

var offerActionTokens = []string{
	"confirm the offer", "confirm offer", "approve the offer", "approve the quote",
	"go ahead with the offer", "move forward with the offer", "finalize the offer",
	"finalise the offer", "lock the offer", "ready for the offer",
	"send the contract", "sign the contract",
}

var billingTokens = []string{
	"invoice", "billing address", "vat", "company name", "purchase order",
}

// NormalizeText mirrors original_source's _normalise_text: collapse
// whitespace and lowercase.
func NormalizeText(message string) string {
	fields := strings.Fields(strings.ToLower(message))
	return strings.Join(fields, " ")
}

func matchesAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func matchesAnyPattern(text string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// HasDateAnchor reports whether normalized text names or implies a date.
func HasDateAnchor(normalized string) bool {
	if isoDatePattern.MatchString(normalized) || numericDatePattern.MatchString(normalized) {
		return true
	}
	if matchesAny(normalized, monthTokens) {
		return true
	}
	if relativeWeekPattern.MatchString(normalized) || weekOfPattern.MatchString(normalized) {
		return true
	}
	if ordinalDayPattern.MatchString(normalized) {
		return true
	}
	if weekdayPattern.MatchString(normalized) {
		return true
	}
	return timeOfDayPattern.MatchString(normalized)
}

// HasAvailabilityAsk reports whether the message asks about open dates.
func HasAvailabilityAsk(normalized string) bool {
	return matchesAny(normalized, availabilityTokens)
}

// HasRoomMention reports whether a known room name appears in the message.
func HasRoomMention(normalized string) bool {
	return matchesAny(normalized, roomNameTokens)
}

// HasOfferAction reports whether the message names an offer-acceptance verb.
func HasOfferAction(normalized string) bool {
	return matchesAny(normalized, offerActionTokens)
}

// HasBillingToken reports whether the message carries a billing-specific term.
func HasBillingToken(normalized string) bool {
	return matchesAny(normalized, billingTokens)
}

// IsActionRequest reports whether the text requests an action rather than
// asking a question.
func IsActionRequest(normalized string) bool {
	return matchesAnyPattern(normalized, actionRequestPatterns)
}

// LooksLikeManagerRequest reports whether the message asks to escalate to a
// human.
func LooksLikeManagerRequest(normalized string) bool {
	return matchesAnyPattern(normalized, managerRequestPatterns)
}

// HasWorkflowSignal reports whether a message carries any token the
// nonsense gate treats as evidence the sender means to interact with the
// booking workflow: a date, a room name, an availability ask, an offer
// action, or a billing token (spec §4.8's nonsense-gate trigger list).
func HasWorkflowSignal(message string) bool {
	normalized := NormalizeText(message)
	if normalized == "" {
		return false
	}
	return HasDateAnchor(normalized) ||
		HasAvailabilityAsk(normalized) ||
		HasRoomMention(normalized) ||
		HasOfferAction(normalized) ||
		HasBillingToken(normalized) ||
		IsActionRequest(normalized)
}

// isRepeatedChar reports whether word is one character repeated four or
// more times (Go's regexp has no backreferences, so this is checked by hand).
func isRepeatedChar(word string) bool {
	runes := []rune(word)
	if len(runes) < 4 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}

var lowSignalPattern = regexp.MustCompile(`^[a-z]{1,3}$`)

// IsGibberish reports whether a message is keyboard-mash noise rather than a
// genuine (if off-topic) message, matching original_source's is_gibberish
// heuristic: very short token runs or a single repeated character.
func IsGibberish(message string) bool {
	normalized := NormalizeText(message)
	if normalized == "" {
		return true
	}
	for _, word := range strings.Fields(normalized) {
		if isRepeatedChar(word) {
			return true
		}
	}
	if lowSignalPattern.MatchString(strings.ReplaceAll(normalized, " ", "")) {
		return true
	}
	return false
}
