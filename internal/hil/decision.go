package hil

import (
	"fmt"
	"strings"
	"time"

	"eventkernel/internal/eventmodel"
)

// ApproveTask approves a pending task by ID and returns the client-facing
// reply it produces. For an AI-reply approval it sends the (possibly
// manager-edited) draft as-is; for a step-specific HIL request it removes
// the request from the event's pending queue, stamps the audit history,
// advances current_step to at least the request's step, and — for Step 4
// with the deposit already satisfied, or Step 5 — signals a Reroute so the
// dispatcher resumes the workflow immediately instead of waiting for the
// next inbound message.
func ApproveTask(db *eventmodel.Database, taskID string, now time.Time, managerNotes, editedMessage string) (Reply, error) {
	task, ok := findTask(db, taskID)
	if !ok {
		return Reply{}, fmt.Errorf("hil: task %s not found", taskID)
	}
	task.Status = eventmodel.TaskApproved

	if task.Type == eventmodel.TaskTypeAIReplyApproval {
		return approveAIReplyTask(db, task, now, managerNotes, editedMessage)
	}
	return approveStepTask(db, task, taskID, now, managerNotes)
}

// RejectTask rejects a pending task by ID and returns the client-facing
// reply (or a "discarded" reply for an AI-reply approval, which never
// reaches the client when declined).
func RejectTask(db *eventmodel.Database, taskID string, now time.Time, managerNotes string) (Reply, error) {
	task, ok := findTask(db, taskID)
	if !ok {
		return Reply{}, fmt.Errorf("hil: task %s not found", taskID)
	}
	task.Status = eventmodel.TaskRejected
	task.Notes = managerNotes

	if task.Type == eventmodel.TaskTypeAIReplyApproval {
		return rejectAIReplyTask(db, task, now, managerNotes)
	}
	return rejectStepTask(db, task, taskID, now, managerNotes)
}

func approveAIReplyTask(db *eventmodel.Database, task *eventmodel.Task, now time.Time, managerNotes, editedMessage string) (Reply, error) {
	eventID, _ := task.Payload["event_id"].(string)
	threadID, _ := task.Payload["thread_id"].(string)
	draftBody, _ := task.Payload["draft_body"].(string)
	step := intFromPayload(task.Payload, "step_id")

	body := draftBody
	if strings.TrimSpace(editedMessage) != "" {
		body = strings.TrimSpace(editedMessage)
	}
	body = appendManagerNote(body, managerNotes)

	if event, ok := findEvent(db, eventID); ok {
		event.HILHistory = append(event.HILHistory, eventmodel.HILHistoryEntry{
			TaskID: task.TaskID, ApprovedAt: now, Notes: managerNotes, Step: step, Decision: "approved",
		})
	}

	return Reply{
		Action: "send_reply", EventID: eventID, ThreadID: threadID,
		DraftBody: body, Edited: editedMessage != "",
	}, nil
}

func rejectAIReplyTask(db *eventmodel.Database, task *eventmodel.Task, now time.Time, managerNotes string) (Reply, error) {
	eventID, _ := task.Payload["event_id"].(string)
	threadID, _ := task.Payload["thread_id"].(string)
	step := intFromPayload(task.Payload, "step_id")

	if event, ok := findEvent(db, eventID); ok {
		event.HILHistory = append(event.HILHistory, eventmodel.HILHistoryEntry{
			TaskID: task.TaskID, ApprovedAt: now, Notes: managerNotes, Step: step, Decision: "rejected",
		})
	}

	return Reply{Action: "discarded", EventID: eventID, ThreadID: threadID, ManagerNote: managerNotes}, nil
}

func approveStepTask(db *eventmodel.Database, task *eventmodel.Task, taskID string, now time.Time, managerNotes string) (Reply, error) {
	event, request, ok := findPendingRequest(db, taskID)
	if !ok {
		return Reply{}, fmt.Errorf("hil: task %s not found in pending approvals", taskID)
	}

	event.HILHistory = append(event.HILHistory, eventmodel.HILHistoryEntry{
		TaskID: taskID, ApprovedAt: now, Notes: managerNotes, Step: request.Step, Decision: "approved",
	})

	if request.Step > event.CurrentStep {
		event.CurrentStep = request.Step
	}

	body := appendManagerNote(request.DraftBody, managerNotes)
	reroute := 0

	switch request.Step {
	case 4:
		if event.OfferAccepted && (!event.Deposit.Required || event.Deposit.Paid) {
			event.SiteVisit.Status = eventmodel.SiteVisitDatePending
			reroute = 5
		}
	case 5:
		if event.NegotiationPendingDecision != "" {
			event.SiteVisit.Status = eventmodel.SiteVisitDatePending
			reroute = 5
		}
		body = composeDecisionReply("approve", managerNotes)
	}

	return Reply{
		Action: "send_reply", EventID: event.EventID, ThreadID: request.ThreadID,
		DraftBody: body, Reroute: reroute,
	}, nil
}

func rejectStepTask(db *eventmodel.Database, task *eventmodel.Task, taskID string, now time.Time, managerNotes string) (Reply, error) {
	event, request, ok := findPendingRequest(db, taskID)
	if !ok {
		return Reply{}, fmt.Errorf("hil: task %s not found in pending approvals", taskID)
	}

	event.HILHistory = append(event.HILHistory, eventmodel.HILHistoryEntry{
		TaskID: taskID, ApprovedAt: now, Notes: managerNotes, Step: request.Step, Decision: "rejected",
	})

	if request.Step > event.CurrentStep {
		event.CurrentStep = request.Step
	}

	body := appendManagerNote(request.DraftBody, managerNotes)
	reroute := 0
	if request.Step == 5 && event.NegotiationPendingDecision != "" {
		reroute = 5
		body = composeDecisionReply("reject", managerNotes)
	}

	return Reply{
		Action: "send_reply", EventID: event.EventID, ThreadID: request.ThreadID,
		DraftBody: body, Reroute: reroute,
	}, nil
}

func intFromPayload(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func findTask(db *eventmodel.Database, taskID string) (*eventmodel.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].TaskID == taskID {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

func findEvent(db *eventmodel.Database, eventID string) (*eventmodel.EventRecord, bool) {
	for i := range db.Events {
		if db.Events[i].EventID == eventID {
			return &db.Events[i], true
		}
	}
	return nil, false
}

// findPendingRequest locates the event and pending HIL request for a task
// ID and removes the request from the event's pending queue.
func findPendingRequest(db *eventmodel.Database, taskID string) (*eventmodel.EventRecord, eventmodel.HILRequest, bool) {
	for i := range db.Events {
		event := &db.Events[i]
		for j, request := range event.PendingHILRequests {
			if request.TaskID == taskID {
				event.PendingHILRequests = append(event.PendingHILRequests[:j], event.PendingHILRequests[j+1:]...)
				return event, request, true
			}
		}
	}
	return nil, eventmodel.HILRequest{}, false
}
