package changedetect

import (
	"strconv"
	"strings"

	"eventkernel/internal/eventmodel"
)

// ChangeType names the workflow fact an inbound message revises.
type ChangeType string

const (
	ChangeNone         ChangeType = ""
	ChangeDate         ChangeType = "date"
	ChangeRoom         ChangeType = "room"
	ChangeRequirements ChangeType = "requirements"
	ChangeProducts     ChangeType = "products"
)

// revisionLexicon is the tenant-wide default revision-signal phrase list;
// a tenant-specific override can be swapped in via DetectionInput.Lexicon.
var revisionLexicon = []string{
	"actually", "switch", "change", "instead", "rather",
	"update", "make it", "can we move", "let's move", "lets move",
}

// DetectionInput carries the extracted facts and upstream detection flags
// the change detector reasons over. UserInfo keys follow the same aliases
// internal/capture reads ("date", "room"/"preferred_room", "participants",
// "products_add", "products_remove").
type DetectionInput struct {
	MessageText string
	UserInfo    map[string]any

	IsQuestion   bool
	IsGeneralQnA bool

	IsAcceptance         bool
	AcceptanceConfidence float64

	SiteVisitActive      bool
	BillingCaptureActive bool

	// Lexicon overrides revisionLexicon when non-empty.
	Lexicon []string
}

// Result is the change detector's verdict.
type Result struct {
	IsChange   bool
	ChangeType ChangeType
}

// DetectChangeType applies spec §4.4's dual-condition rule: a revision
// signal must be present in the message AND a specific target must be
// bound (a new date, room, participant count, or product edit), before a
// message counts as a change. Q&A never creates a detour; billing-capture
// mode and acceptance-pattern messages short-circuit it entirely; an
// active site visit suppresses date-change detection only, since dates in
// that context name the visit, not the event.
func DetectChangeType(record *eventmodel.EventRecord, input DetectionInput) Result {
	if input.IsQuestion || input.IsGeneralQnA {
		return Result{}
	}
	if input.BillingCaptureActive {
		return Result{}
	}
	if input.IsAcceptance && input.AcceptanceConfidence >= 0.7 {
		return Result{}
	}

	lexicon := input.Lexicon
	if len(lexicon) == 0 {
		lexicon = revisionLexicon
	}
	normalized := strings.ToLower(input.MessageText)
	if !containsAny(normalized, lexicon) {
		return Result{}
	}

	if record == nil {
		return Result{}
	}

	if !input.SiteVisitActive {
		if newDate, ok := stringValue(input.UserInfo, "date"); ok {
			if newDate != "" && newDate != record.ChosenDate && strings.Contains(input.MessageText, newDate) {
				return Result{IsChange: true, ChangeType: ChangeDate}
			}
		}
	}

	if newRoom, ok := stringValue(input.UserInfo, "room", "preferred_room"); ok {
		if newRoom != "" && !strings.EqualFold(newRoom, record.LockedRoomID) {
			return Result{IsChange: true, ChangeType: ChangeRoom}
		}
	}

	if newParticipants, ok := intValue(input.UserInfo, "participants"); ok {
		if newParticipants != record.Requirements.Participants {
			return Result{IsChange: true, ChangeType: ChangeRequirements}
		}
	}

	if hasProductEdit(input.UserInfo) {
		return Result{IsChange: true, ChangeType: ChangeProducts}
	}

	return Result{}
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func stringValue(userInfo map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := userInfo[key].(string); ok {
			return v, true
		}
	}
	return "", false
}

func intValue(userInfo map[string]any, key string) (int, bool) {
	value, ok := userInfo[key]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func hasProductEdit(userInfo map[string]any) bool {
	if v, ok := userInfo["products_add"]; ok && !isEmptySlice(v) {
		return true
	}
	if v, ok := userInfo["products_remove"]; ok && !isEmptySlice(v) {
		return true
	}
	return false
}

func isEmptySlice(value any) bool {
	switch v := value.(type) {
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}
