package hil

import (
	"strconv"

	"eventkernel/internal/eventmodel"

	"github.com/google/uuid"
)

// EnqueueStepApproval enqueues a step-specific HIL approval request,
// deduplicated by signature = "step:offer_id" (spec §4.6 "A step's
// acceptance flow enqueues at most one outstanding HIL per signature").
// If a pending request with the same signature already exists on event,
// its task ID is returned unchanged and created is false.
func EnqueueStepApproval(db *eventmodel.Database, event *eventmodel.EventRecord, step int, offerID, draftBody, threadID string) (taskID string, created bool) {
	signature := signatureFor(step, offerID)

	for _, request := range event.PendingHILRequests {
		if request.Signature == signature {
			return request.TaskID, false
		}
	}

	taskID = uuid.NewString()
	event.PendingHILRequests = append(event.PendingHILRequests, eventmodel.HILRequest{
		TaskID:    taskID,
		Signature: signature,
		Step:      step,
		DraftBody: draftBody,
		ThreadID:  threadID,
	})
	db.Tasks = append(db.Tasks, eventmodel.Task{
		TaskID:  taskID,
		Type:    eventmodel.TaskTypeStepApproval,
		Status:  eventmodel.TaskPending,
		EventID: event.EventID,
		Payload: map[string]any{"step_id": step, "thread_id": threadID, "signature": signature},
	})
	return taskID, true
}

// SupersedePriorStepTasks marks every other outstanding step-approval task
// for event as done, matching spec §4.6's "Prior HIL tasks from other steps
// (e.g., Step 4 offer draft) are transitioned to done when Step 5 owns
// acceptance." keepTaskID's own request (if present) is left in place.
func SupersedePriorStepTasks(db *eventmodel.Database, event *eventmodel.EventRecord, keepTaskID string) {
	var remaining []eventmodel.HILRequest
	for _, request := range event.PendingHILRequests {
		if request.TaskID == keepTaskID {
			remaining = append(remaining, request)
			continue
		}
		for i := range db.Tasks {
			if db.Tasks[i].TaskID == request.TaskID && db.Tasks[i].EventID == event.EventID {
				db.Tasks[i].Status = eventmodel.TaskDone
			}
		}
	}
	event.PendingHILRequests = remaining
}

func signatureFor(step int, offerID string) string {
	return strconv.Itoa(step) + ":" + offerID
}
