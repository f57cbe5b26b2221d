package steps

import (
	"strings"

	"eventkernel/internal/classify"
	"eventkernel/internal/eventmodel"
	"eventkernel/internal/gate"
	"eventkernel/internal/hil"
)

// counterOfferThreshold is the max counter-proposal round before the
// negotiation is handed to a human (spec §4.3.5 "above a threshold (3)";
// §9 open question flags this as possibly tenant-configurable, defaulted
// to the source's 3 here).
const counterOfferThreshold = 3

var declineTokens = []string{"not interested", "we'll pass", "we will pass", "too expensive", "going with another venue", "decline"}
var counterTokens = []string{"can you lower", "reduce the price", "counter", "would you do", "any discount", "lower the"}
var clarificationTokens = []string{"what does", "could you clarify", "i don't understand", "not sure what", "what do you mean"}

type negotiationIntent string

const (
	negotiationAccept        negotiationIntent = "accept"
	negotiationDecline       negotiationIntent = "decline"
	negotiationCounter       negotiationIntent = "counter"
	negotiationClarification negotiationIntent = "clarification"
	negotiationRoomSelection negotiationIntent = "room_selection"
)

func classifyNegotiation(normalized string) (negotiationIntent, float64) {
	if classify.HasRoomMention(normalized) {
		return negotiationRoomSelection, 0.8
	}
	if matchesAny(normalized, declineTokens) {
		return negotiationDecline, 0.85
	}
	if matchesAny(normalized, counterTokens) {
		return negotiationCounter, 0.8
	}
	acceptance := classify.MatchConfirmation(normalized)
	if acceptance.IsMatch {
		return negotiationAccept, acceptance.Confidence
	}
	if matchesAny(normalized, clarificationTokens) {
		return negotiationClarification, 0.7
	}
	return negotiationClarification, 0.3
}

// Step5 runs negotiation (spec §4.3.5): classifies the message into one of
// five outcomes and funnels an acceptance through the Confirmation Gate.
func Step5(deps Dependencies, turn Turn) Result {
	record := turn.Record

	if classification, result, handled := preStepChecks(deps, turn, 5); handled {
		_ = classification
		return result
	}

	record.CurrentStep = 5
	normalized := classifyNormalized(turn.MessageText)
	intent, _ := classifyNegotiation(normalized)

	switch intent {
	case negotiationAccept:
		return negotiationAcceptFlow(deps, turn)
	case negotiationDecline:
		record.OfferAccepted = false
		record.NegotiationPendingDecision = ""
		record.CallerStep = 0
		record.CurrentStep = 7
		record.AppendAudit(5, 7, "offer_declined", "system", deps.now())
		return Step7(deps, turn)
	case negotiationCounter:
		record.Negotiation.CounterCount++
		if record.Negotiation.CounterCount > counterOfferThreshold {
			task := eventmodel.Task{
				TaskID: newTaskID(), Type: eventmodel.TaskTypeManualReview, Status: eventmodel.TaskPending,
				EventID: record.EventID, Payload: map[string]any{"step_id": 5, "reason": "counter_offer_threshold_exceeded"},
			}
			turn.DB.Tasks = append(turn.DB.Tasks, task)
			record.Negotiation.ManualReviewTaskID = task.TaskID
			record.ThreadState = eventmodel.ThreadAwaitingManagerReview
			return Result{Action: "negotiation_manual_review", DraftBody: "I've looped in our team to review your request directly.", Halt: true, ManualReviewTaskID: task.TaskID}
		}
		return draftResult("negotiation_counter_received", "Thanks for the counter-proposal — let me see what I can do and get back to you.", "negotiation_counter", false, true)
	case negotiationRoomSelection:
		return Result{Action: "negotiation_room_selection_detour", Halt: false, Reroute: 3}
	default:
		return draftResult("negotiation_clarification", "Just to make sure I've got this right — are you accepting the offer, proposing a change, or did you have a question?", "negotiation_clarification", false, true)
	}
}

func negotiationAcceptFlow(deps Dependencies, turn Turn) Result {
	record := turn.Record
	record.OfferAccepted = true
	record.NegotiationPendingDecision = "accept"

	status := gate.CheckConfirmationGate(record)
	record.BillingRequirements.AwaitingBillingForAccept = !status.BillingComplete
	record.BillingRequirements.LastMissing = status.BillingMissing

	if !status.ReadyForHIL() {
		pending := status.PendingItems()
		if !status.BillingComplete {
			return draftResult("negotiation_accept_billing_pending",
				"Wonderful — to proceed I'll need your billing details: "+strings.Join(status.BillingMissing, ", ")+".",
				"billing_request", false, true)
		}
		return draftResult("negotiation_accept_deposit_pending",
			"Wonderful — your billing is on file. A deposit is required before I can finalize: "+strings.Join(pending, ", ")+".",
			"deposit_request", false, true)
	}

	taskID, created := hil.EnqueueStepApproval(turn.DB, record, 5, record.CurrentOfferID, "Offer accepted, billing complete, deposit paid — ready to finalize.", turn.ThreadID)
	if created {
		hil.SupersedePriorStepTasks(turn.DB, record, taskID)
	}
	record.ThreadState = eventmodel.ThreadWaitingOnHIL
	return Result{
		Action: "negotiation_accept_ready_for_hil", Topic: "hil_final_approval",
		DraftBody: "Thank you — everything's in place. I'm passing this to our team for final sign-off.",
		Halt:      true,
	}
}
