package changedetect

import "eventkernel/internal/eventmodel"

// Decision is the DAG router's verdict on where a detected change sends
// the thread, and what re-evaluation work that target step must redo.
type Decision struct {
	NextStep          int
	UpdatedCallerStep int
	NeedsReeval       bool
	SkipReason        string
}

// RouteChangeOnUpdatedVariable applies spec §4.4's routing DAG for a
// detected change, mutating record's invalidated facts in place (clearing
// stale locks/hashes, preserving the deepest caller step across chained
// detours) and returning the routing decision.
func RouteChangeOnUpdatedVariable(record *eventmodel.EventRecord, changeType ChangeType, fromStep int) Decision {
	if record == nil || changeType == ChangeNone {
		return Decision{NextStep: fromStep, SkipReason: "no_change"}
	}

	var decision Decision
	switch changeType {
	case ChangeDate:
		if fromStep <= 1 {
			return Decision{NextStep: fromStep, SkipReason: "already_at_intake"}
		}
		decision = Decision{NextStep: 2, NeedsReeval: true}
		record.RoomEvalHash = ""
		record.DateConfirmed = false

	case ChangeRequirements:
		target := 3
		if !record.DateConfirmed {
			target = 2
		}
		decision = Decision{NextStep: target, NeedsReeval: true}
		record.LockedRoomID = ""
		record.RoomEvalHash = ""

	case ChangeRoom:
		decision = Decision{NextStep: 3, NeedsReeval: true}
		record.LockedRoomID = ""

	case ChangeProducts:
		decision = Decision{NextStep: 4, NeedsReeval: true}

	default:
		return Decision{NextStep: fromStep, SkipReason: "unrecognized_change_type"}
	}

	if record.CallerStep == 0 {
		record.CallerStep = fromStep
	}
	decision.UpdatedCallerStep = record.CallerStep

	if decision.NextStep < fromStep {
		record.NegotiationPendingDecision = ""
	}

	return decision
}
