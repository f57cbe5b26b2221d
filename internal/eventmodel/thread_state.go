package eventmodel

// ThreadState enumerates the closed set of conversation states an event can be in.
type ThreadState string

const (
	ThreadInProgress           ThreadState = "InProgress"
	ThreadAwaitingClient       ThreadState = "AwaitingClient"
	ThreadAwaitingClientReply  ThreadState = "AwaitingClientResponse"
	ThreadWaitingOnHIL         ThreadState = "WaitingOnHIL"
	ThreadAwaitingManagerReview ThreadState = "AwaitingManagerReview"
)

// Valid reports whether the value belongs to the closed thread-state set.
func (t ThreadState) Valid() bool {
	switch t {
	case ThreadInProgress, ThreadAwaitingClient, ThreadAwaitingClientReply, ThreadWaitingOnHIL, ThreadAwaitingManagerReview:
		return true
	default:
		return false
	}
}

// EventStatus enumerates the lifecycle status of an EventRecord.
type EventStatus string

const (
	StatusLead      EventStatus = "Lead"
	StatusConfirmed EventStatus = "Confirmed"
	StatusCancelled EventStatus = "Cancelled"
	StatusOption    EventStatus = "Option"
)

// Terminal reports whether the status freezes further mutation except audit appends.
func (s EventStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// SiteVisitStatus enumerates the site-visit state machine (§4.10).
type SiteVisitStatus string

const (
	SiteVisitIdle        SiteVisitStatus = "idle"
	SiteVisitDatePending SiteVisitStatus = "date_pending"
	SiteVisitScheduled   SiteVisitStatus = "scheduled"
	SiteVisitCompleted   SiteVisitStatus = "completed"
	SiteVisitCancelled   SiteVisitStatus = "cancelled"
)

// TaskStatus enumerates the lifecycle of a HIL/routing Task.
type TaskStatus string

const (
	TaskPending  TaskStatus = "pending"
	TaskApproved TaskStatus = "approved"
	TaskRejected TaskStatus = "rejected"
	TaskDone     TaskStatus = "done"
)

// TaskType distinguishes generic AI-reply approvals from step-specific HIL requests.
type TaskType string

const (
	TaskTypeAIReplyApproval TaskType = "ai_reply_approval"
	TaskTypeStepApproval    TaskType = "step_approval"
	TaskTypeManualReview    TaskType = "manual_review"
)
