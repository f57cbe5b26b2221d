// Package hil implements the human-in-the-loop task engine from spec
// §4.6: a manager approves or rejects a pending task — either a generic
// AI-reply approval or a step-specific HIL request — and the engine
// produces the client-facing reply and updates the event's audit trail.
//
// Ported in meaning from
// original_source/backend/workflows/runtime/hil_tasks.py:
// approve_task_and_send/reject_task_and_send's dual handling of
// TaskTypeAIReplyApproval vs. step-specific pending_hil_requests,
// _compose_hil_decision_reply's step-5 decision wording, and
// cleanup_tasks's thread-scoped task pruning. The re-entry into Step 5's
// negotiation decision that the original performs inline (calling back
// into the negotiation handler before returning) is modeled here as a
// Reroute signal instead: this package has no dependency on the step
// handlers, so it reports where the dispatcher should resume rather than
// resuming it directly.
package hil
