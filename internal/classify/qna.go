package classify

var qnaKeywords = map[string][]string{
	"rooms_by_feature": {
		"hdmi", "projector", "screen", "sound system", "audio", "video",
		"features", "equipment", "what rooms", "which rooms", "any rooms",
		"room options", "room choices", "can you recommend a room", "do rooms have",
	},
	"room_features": {
		"room a have", "room b have", "room c have", "punkt.null have", "punkt null have",
		"room a include", "room b include", "room c include", "punkt null include",
		"punkt.null include", "features of room", "equipment in room",
	},
	"catering_for": {
		"catering", "menu", "menus", "package", "packages", "package options",
		"coffee break", "coffee", "snacks", "lunch", "dinner", "drinks",
		"beverage", "beverages", "apero", "aperitif",
	},
	"products_for": {
		"products", "add-ons", "addons", "equipment", "lighting", "microphone",
		"av setup", "av equipment", "tech package", "hybrid kit",
	},
	"free_dates": {
		"available dates", "free dates", "dates available", "which days are free",
		"open dates", "date options", "next available date", "what dates",
	},
	"site_visit_overview": {
		"site visit", "tour", "walkthrough", "visit the venue", "come by", "venue tour",
	},
	"site_visit_request": {
		"book a site visit", "schedule a visit", "arrange a visit", "can i visit",
		"can we visit", "would like to visit", "want to see the room",
		"want to see the venue", "view the room", "view the venue",
		"check out the space", "see the space", "visit before", "visit beforehand",
		"come see", "come and see", "tour the room", "tour of the room",
	},
	"parking_policy": {
		"parking", "car park", "where to park", " park", "park?", "loading dock", "access",
	},
	"check_availability": {
		"is it available", "are you available", "is it free", "is it booked",
		"can we book", "open for booking", "status of",
	},
	"request_option": {
		"can i hold", "can we hold", "can we option", "tentative booking",
		"provisional booking", "soft hold", "first option", "put on hold",
		"put it on hold", "hold the space",
	},
	"check_capacity": {
		"capacity", "how many people", "how many guests", "does it fit",
		"will it fit", "enough space", "standing capacity", "seated capacity",
		"theater style", "theatre style", "max capacity", "maximum capacity",
	},
	"check_alternatives": {
		"waitlist", "waiting list", "other dates", "alternative dates",
		"different dates", "next available", "nearest available", "backup option",
		"next opening", "what else", "any other rooms", "if not available",
	},
	"confirm_booking": {
		"green light", "lock it in", "secure the date", "binding booking",
		"firm commitment", "ready to book", "ready to sign", "sign us up",
		"sign me up", "that's a deal", "it's a deal",
	},
}

// qnaTypeToStep maps a Q&A sub-type to the workflow step that owns it; 0
// means the sub-type is general/cross-step information, not tied to one
// step (spec §4.8's "table-driven mapping of Q&A sub-types to workflow steps").
var qnaTypeToStep = map[string]int{
	"free_dates":          2,
	"check_availability":  2,
	"rooms_by_feature":    3,
	"room_features":       3,
	"check_capacity":      3,
	"check_alternatives":  3,
	"catering_for":        4,
	"products_for":        4,
	"request_option":      4,
	"site_visit_overview": 7,
	"site_visit_request":  0,
	"parking_policy":      0,
	"confirm_booking":     7,
}

// qnaStepAnchors orders the Q&A sub-types by precedence when resolving the
// step_anchor a message should be routed against.
var qnaStepAnchors = []struct {
	types  []string
	anchor string
}{
	{[]string{"site_visit_request"}, "Site Visit"},
	{[]string{"check_availability", "check_capacity", "check_alternatives"}, "Room Availability"},
	{[]string{"request_option", "confirm_booking"}, "Offer Review"},
	{[]string{"free_dates"}, "Date Confirmation"},
	{[]string{"rooms_by_feature", "room_features"}, "Room Availability"},
	{[]string{"catering_for", "products_for"}, "Offer Review"},
	{[]string{"site_visit_overview"}, "Site Visit"},
}

// DetectQnATypes scans normalized text for every matching Q&A sub-type,
// in deterministic key order, unless the message reads as an action
// request (booking intent, not a question).
func DetectQnATypes(normalized string) []string {
	if IsActionRequest(normalized) {
		return nil
	}
	var matches []string
	for _, qnaType := range qnaTypeOrder {
		if matchesAny(normalized, qnaKeywords[qnaType]) {
			matches = append(matches, qnaType)
		}
	}
	return matches
}

// qnaTypeOrder fixes iteration order over qnaKeywords so DetectQnATypes is
// deterministic (Go map iteration order is not).
var qnaTypeOrder = []string{
	"rooms_by_feature", "room_features", "catering_for", "products_for",
	"free_dates", "site_visit_overview", "site_visit_request", "parking_policy",
	"check_availability", "request_option", "check_capacity", "check_alternatives",
	"confirm_booking",
}

// SpansMultipleSteps reports whether the Q&A sub-types span more than one
// workflow step, excluding the cross-step/general step 0 bucket.
func SpansMultipleSteps(qnaTypes []string) bool {
	steps := stepSet(qnaTypes)
	delete(steps, 0)
	return len(steps) > 1
}

// QnASteps returns the sorted, deduplicated set of workflow steps the Q&A
// sub-types cover, excluding step 0.
func QnASteps(qnaTypes []string) []int {
	steps := stepSet(qnaTypes)
	delete(steps, 0)
	out := make([]int, 0, len(steps))
	for step := range steps {
		out = append(out, step)
	}
	sortInts(out)
	return out
}

func stepSet(qnaTypes []string) map[int]struct{} {
	steps := make(map[int]struct{}, len(qnaTypes))
	for _, qnaType := range qnaTypes {
		steps[qnaTypeToStep[qnaType]] = struct{}{}
	}
	return steps
}

func sortInts(values []int) {
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j-1] > values[j]; j-- {
			values[j-1], values[j] = values[j], values[j-1]
		}
	}
}

// stepAnchorFromQnA resolves the highest-precedence step anchor implied by
// the detected Q&A sub-types, or "" if none matched.
func stepAnchorFromQnA(qnaTypes []string) string {
	if len(qnaTypes) == 0 {
		return ""
	}
	present := make(map[string]struct{}, len(qnaTypes))
	for _, t := range qnaTypes {
		present[t] = struct{}{}
	}
	for _, group := range qnaStepAnchors {
		for _, t := range group.types {
			if _, ok := present[t]; ok {
				return group.anchor
			}
		}
	}
	return ""
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
