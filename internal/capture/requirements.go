package capture

import (
	"regexp"
	"strconv"
	"strings"

	"eventkernel/internal/eventmodel"
)

var questionStarters = []string{
	"what", "which", "how", "would", "could", "can", "is", "are", "do", "does", "will",
}

var butBeforeQuestionPattern = regexp.MustCompile(`(?i)\s+but\s+(what|how|which|would|could|can)`)
var sentenceBoundaryPattern = regexp.MustCompile(`(?:[.!?])\s+`)

// SplitStatementVsQuestion splits a message into its statement part (to
// persist onto requirements) and its question part (answered but never
// persisted), mirroring original_source's split_statement_vs_question:
// sentences containing "?" or opening with a question word are questions,
// everything else is a statement. "but what about ..." splits the question
// off from the statement that precedes it.
func SplitStatementVsQuestion(text string) (statements, questions string) {
	if text == "" {
		return "", ""
	}

	// Cut before each "but <question word>", keeping the question word with
	// the chunk that follows (Go's regexp has no lookahead).
	var chunks []string
	last := 0
	for _, m := range butBeforeQuestionPattern.FindAllStringSubmatchIndex(text, -1) {
		chunks = append(chunks, text[last:m[0]])
		last = m[2]
	}
	chunks = append(chunks, text[last:])

	var statementParts, questionParts []string
	for _, chunk := range chunks {
		for _, sentence := range splitSentences(strings.TrimSpace(chunk)) {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			if strings.Contains(sentence, "?") || startsWithQuestionWord(sentence) {
				questionParts = append(questionParts, sentence)
			} else {
				statementParts = append(statementParts, sentence)
			}
		}
	}

	return strings.Join(statementParts, " "), strings.Join(questionParts, " ")
}

func splitSentences(text string) []string {
	if text == "" {
		return nil
	}
	// Split immediately after a sentence terminator, keeping the
	// terminator attached to the sentence that precedes it.
	var sentences []string
	last := 0
	matches := sentenceBoundaryPattern.FindAllStringIndex(text, -1)
	for _, match := range matches {
		sentences = append(sentences, text[last:match[0]+1])
		last = match[1]
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}
	return sentences
}

func startsWithQuestionWord(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, starter := range questionStarters {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}
	return false
}

// CapturedRequirements is the set of requirement fields a statement
// actually supplied, returned so callers can log or telemetry-track what
// changed.
type CapturedRequirements struct {
	Participants        *int
	SeatingLayout       string
	PreferredRoom       string
	SpecialRequirements string
}

// CaptureWorkflowRequirements persists requirement facts found in the
// statement part of a message directly onto record.Requirements (unlike
// CaptureUserFields, these are live workflow facts, not staged for later
// promotion). Values that appear only in the question part of the message
// are left alone: a question about capacity must not be read as a
// requirements update. Mirrors original_source's
// capture_workflow_requirements.
func CaptureWorkflowRequirements(record *eventmodel.EventRecord, text string, userInfo map[string]any) CapturedRequirements {
	var captured CapturedRequirements
	statementPart, _ := SplitStatementVsQuestion(text)
	if statementPart == "" || record == nil {
		return captured
	}

	statementLower := strings.ToLower(statementPart)

	if participants, ok := userInfo["participants"]; ok {
		if n, ok := coerceInt(participants); ok && strings.Contains(statementPart, strconv.Itoa(n)) {
			record.Requirements.Participants = n
			captured.Participants = &n
		}
	}

	if layout, ok := userInfo["layout"].(string); ok && layout != "" && strings.Contains(statementLower, strings.ToLower(layout)) {
		record.Requirements.Layout = layout
		captured.SeatingLayout = layout
	}

	room := stringField(userInfo, "room", "preferred_room")
	if room != "" && strings.Contains(statementLower, strings.ToLower(room)) {
		record.Requirements.PreferredRoom = room
		captured.PreferredRoom = room
	}

	notes := stringField(userInfo, "notes", "special_requirements")
	if notes != "" && sharesWord(strings.ToLower(notes), statementLower) {
		record.Requirements.SpecialRequirements = appendUnique(record.Requirements.SpecialRequirements, notes)
		captured.SpecialRequirements = notes
	}

	return captured
}

func coerceInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		return ParticipantsFromString(v)
	default:
		return 0, false
	}
}

func stringField(userInfo map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := userInfo[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func sharesWord(a, b string) bool {
	wordsB := make(map[string]struct{})
	for _, word := range strings.Fields(b) {
		wordsB[word] = struct{}{}
	}
	for _, word := range strings.Fields(a) {
		if _, ok := wordsB[word]; ok {
			return true
		}
	}
	return false
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
