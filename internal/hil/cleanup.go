package hil

import "eventkernel/internal/eventmodel"

// CleanupTasks removes resolved or stale HIL tasks from db, optionally
// keeping only tasks tied to keepThreadID (pass "" to clear everything).
// It also prunes any pending_hil_requests entries that referenced a
// removed task, and returns the number of tasks removed. Mirrors
// original_source's cleanup_tasks.
func CleanupTasks(db *eventmodel.Database, keepThreadID string) int {
	if len(db.Tasks) == 0 {
		return 0
	}

	removed := map[string]struct{}{}
	if keepThreadID == "" {
		for _, task := range db.Tasks {
			if task.TaskID != "" {
				removed[task.TaskID] = struct{}{}
			}
		}
		db.Tasks = nil
	} else {
		var remaining []eventmodel.Task
		for _, task := range db.Tasks {
			threadID, _ := task.Payload["thread_id"].(string)
			if threadID == keepThreadID {
				remaining = append(remaining, task)
			} else if task.TaskID != "" {
				removed[task.TaskID] = struct{}{}
			}
		}
		db.Tasks = remaining
	}

	if len(removed) == 0 {
		return 0
	}

	for i := range db.Events {
		event := &db.Events[i]
		if len(event.PendingHILRequests) == 0 {
			continue
		}
		var kept []eventmodel.HILRequest
		for _, request := range event.PendingHILRequests {
			if _, isRemoved := removed[request.TaskID]; !isRemoved {
				kept = append(kept, request)
			}
		}
		event.PendingHILRequests = kept
	}

	return len(removed)
}
