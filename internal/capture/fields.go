package capture

import (
	"strconv"
	"strings"

	"eventkernel/internal/eventmodel"
)

// FieldSpec names one out-of-order field the capture layer recognizes,
// mirroring original_source's _FIELD_SPECS table.
type FieldSpec struct {
	Alias string
	// Path is the dotted location inside EventRecord.Captured the raw
	// value is staged at before promotion.
	Path []string
	// Step is the workflow step that owns this field and is allowed to
	// promote it out of the staging area.
	Step int
	// Deferred names the intent recorded in DeferredIntents while the
	// thread has not yet reached Step.
	Deferred string
	// HoldUntilOwner means the raw value is also removed from the
	// caller's userInfo map until the owning step is reached, so earlier
	// steps never see it (original_source: billing fields are held this
	// way so Step 2/3 never act on a prematurely supplied VAT number).
	HoldUntilOwner bool
}

// fieldSpecs is iterated in this fixed order so CapturedSources/telemetry
// append order is deterministic, mirroring the original dict's insertion
// order (Python 3.7+ dicts preserve it; Go maps do not).
var fieldSpecs = []FieldSpec{
	{Alias: "date", Path: []string{"date"}, Step: 2, Deferred: "date_confirmation"},
	{Alias: "event_date", Path: []string{"event_date"}, Step: 2, Deferred: "date_confirmation"},
	{Alias: "start_time", Path: []string{"start_time"}, Step: 2, Deferred: "date_confirmation"},
	{Alias: "end_time", Path: []string{"end_time"}, Step: 2, Deferred: "date_confirmation"},
	{Alias: "room", Path: []string{"preferred_room"}, Step: 3, Deferred: "room_selection"},
	{Alias: "preferred_room", Path: []string{"preferred_room"}, Step: 3, Deferred: "room_selection"},
	{Alias: "billing_address", Path: []string{"billing", "address"}, Step: 4, Deferred: "billing_update", HoldUntilOwner: true},
	{Alias: "company", Path: []string{"billing", "company"}, Step: 4, Deferred: "billing_update", HoldUntilOwner: true},
	{Alias: "name", Path: []string{"contact", "name"}, Step: 4, Deferred: "contact_update"},
	{Alias: "email", Path: []string{"contact", "email"}, Step: 4, Deferred: "contact_update"},
	{Alias: "phone", Path: []string{"contact", "phone"}, Step: 4, Deferred: "contact_update"},
}

func pathKey(path []string) string {
	return strings.Join(path, ".")
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// CaptureUserFields scans userInfo for any recognized alias and stages it
// into record.Captured, recording provenance in CapturedSources and, when
// the owning step is still ahead of currentStep, a deferred-intent marker.
// source labels the origin of the value ("user_message" when empty),
// matching original_source's source_label default.
func CaptureUserFields(record *eventmodel.EventRecord, userInfo map[string]any, currentStep int, source string) {
	if record == nil || len(userInfo) == 0 {
		return
	}
	if record.Captured == nil {
		record.Captured = map[string]any{}
	}
	if source == "" {
		source = "user_message"
	}

	for _, spec := range fieldSpecs {
		value, ok := userInfo[spec.Alias]
		if !ok || isBlank(value) {
			continue
		}

		setNested(record.Captured, spec.Path, value)
		dotted := pathKey(spec.Path)
		if !containsString(record.CapturedSources, source+":"+dotted) {
			record.CapturedSources = append(record.CapturedSources, source+":"+dotted)
		}

		if spec.Deferred != "" && currentStep < spec.Step && !containsString(record.DeferredIntents, spec.Deferred) {
			record.DeferredIntents = append(record.DeferredIntents, spec.Deferred)
		}

		if spec.HoldUntilOwner && currentStep < spec.Step {
			delete(userInfo, spec.Alias)
		}
	}
}

// PromoteCapturedFields applies every staged field whose owning step has
// been reached (spec.Step <= currentStep) onto the live EventRecord
// fields, clears it from Captured, and drops its deferred-intent marker.
// A field with no live EventRecord field (contact name/email/phone) only
// has its deferred-intent marker dropped and stays in Captured. It returns
// the aliases promoted, for logging.
func PromoteCapturedFields(record *eventmodel.EventRecord, currentStep int) []string {
	if record == nil || len(record.Captured) == 0 {
		return nil
	}

	var promoted []string
	for _, spec := range fieldSpecs {
		if spec.Step > currentStep {
			continue
		}
		value, ok := lookupNested(record.Captured, spec.Path)
		if !ok || isBlank(value) {
			continue
		}
		record.DeferredIntents = removeString(record.DeferredIntents, spec.Deferred)
		if !applyField(record, spec.Alias, value) {
			continue
		}
		promoted = append(promoted, spec.Alias)
		deleteNested(record.Captured, spec.Path)
	}
	return promoted
}

func applyField(record *eventmodel.EventRecord, alias string, value any) bool {
	str, _ := value.(string)
	switch alias {
	case "date", "event_date":
		if str == "" {
			return false
		}
		record.RequestedWindow.DateISO = str
	case "start_time":
		record.RequestedWindow.Start = str
	case "end_time":
		record.RequestedWindow.End = str
	case "room", "preferred_room":
		if str == "" {
			return false
		}
		record.Requirements.PreferredRoom = str
	case "billing_address":
		record.BillingDetails.Street = str
	case "company":
		record.BillingDetails.Company = str
	case "name", "email", "phone":
		// No dedicated contact struct on EventRecord; these are carried
		// purely as provenance in Captured/CapturedSources for the step
		// handler that owns Step 4's contact confirmation prompt.
		return false
	default:
		return false
	}
	return true
}

func setNested(root map[string]any, path []string, value any) {
	node := root
	for _, key := range path[:len(path)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[key] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
}

func lookupNested(root map[string]any, path []string) (any, bool) {
	node := root
	for _, key := range path[:len(path)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			return nil, false
		}
		node = next
	}
	value, ok := node[path[len(path)-1]]
	return value, ok
}

func deleteNested(root map[string]any, path []string) {
	node := root
	for _, key := range path[:len(path)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			return
		}
		node = next
	}
	delete(node, path[len(path)-1])
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func removeString(values []string, target string) []string {
	if target == "" {
		return values
	}
	out := values[:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

// ParticipantsFromString parses a numeric participant count the way
// capture_workflow_requirements does when matching it against statement
// text, returning ok=false on anything non-numeric.
func ParticipantsFromString(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}
