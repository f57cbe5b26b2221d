package sitevisit

import "strings"

// siteVisitIntentPhrases mirrors the site_visit_overview/site_visit_request
// Q&A keyword tables in internal/classify's qna.go — both are grounded on
// the same spec.md §4.10 "dedicated Q&A type" language, so the lexicon is
// shared in spirit rather than imported across packages.
var siteVisitIntentPhrases = []string{
	"site visit", "tour", "walkthrough", "visit the venue", "come by", "venue tour",
	"book a site visit", "schedule a visit", "arrange a visit", "can i visit",
	"can we visit", "would like to visit", "want to see the room",
	"want to see the venue", "view the room", "view the venue",
	"check out the space", "see the space", "visit before", "visit beforehand",
	"come see", "come and see", "tour the room", "tour of the room",
}

// IsSiteVisitIntent reports whether the (already-lowercased) message text
// expresses a site-visit request. Mirrors site_visit_handler.py's
// is_site_visit_intent, whose own body is absent from the filtered
// original_source dump; the phrase list here is reasoned from the call
// sites and from classify's sibling keyword table.
func IsSiteVisitIntent(normalized string) bool {
	for _, phrase := range siteVisitIntentPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
