package hil

import "strings"

// Reply is the client-facing payload a HIL decision produces.
type Reply struct {
	Action      string // "send_reply" or "discarded"
	EventID     string
	ThreadID    string
	DraftBody   string
	Edited      bool
	ManagerNote string

	// Reroute, when non-zero, tells the dispatcher to resume the turn at
	// this step immediately (Step 4 approval with deposit already
	// satisfied continues straight to the site-visit step; a Step 5
	// approval/rejection applies the pending negotiation decision).
	Reroute int
}

// composeDecisionReply builds the client-facing message for a Step 5
// (negotiation) HIL decision, mirroring _compose_hil_decision_reply.
func composeDecisionReply(decision string, managerNotes string) string {
	approved := decision == "approve"
	decisionLine := "Manager decision: Declined"
	nextLine := "Next step: I'll revise the offer with this feedback and share an updated proposal."
	if approved {
		decisionLine = "Manager decision: Approved"
		nextLine = "Next step: Let's continue with site visit bookings. Do you have any preferred dates or times?"
	}

	sections := []string{decisionLine}
	if note := strings.TrimSpace(managerNotes); note != "" {
		sections = append(sections, "Manager note: "+note)
	}
	sections = append(sections, nextLine)
	return strings.Join(sections, "\n\n")
}

// appendManagerNote appends a manager note to a draft body the way every
// non-Step-5 decision does: plain concatenation under a "Manager note:"
// heading, or the note alone if the draft was empty.
func appendManagerNote(body, managerNotes string) string {
	note := strings.TrimSpace(managerNotes)
	if note == "" {
		return body
	}
	if strings.TrimSpace(body) == "" {
		return "Manager note:\n" + note
	}
	return strings.TrimRight(body, " \t\n") + "\n\nManager note:\n" + note
}
