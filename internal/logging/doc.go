// Package logging assembles structured slog loggers and formatting helpers used
// across the event workflow kernel.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so turn and step code can
// automatically tag log lines with event IDs, step numbers, tenant IDs, and
// correlation IDs. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// # Logging Contract
//
// Level semantics:
//   - INFO: narrative milestones plus decisions that change the event's
//     persisted state (step transitions, gate outcomes, HIL resolutions).
//   - WARN: degraded behavior or user action needed (fallbacks, review states).
//   - ERROR: operation failed; will stop or retry.
//   - DEBUG: raw diagnostics, classifier scores, adapter payloads, and
//     decisions that do not affect the persisted event.
//
// # Required Fields by Level
//
// INFO logs must include:
//   - event_type: lifecycle event (e.g., "step_start", "step_complete", "status")
//
// WARN logs must include all three fields (the "WARN triad"):
//   - event_type: what happened (e.g., "deposit_reload_failed")
//   - error_hint: actionable next step (e.g., "check billing.json permissions")
//   - impact: user-facing consequence (e.g., "confirmation gate deferred to next turn")
//
// Use WarnWithContext() helper to enforce the WARN triad automatically.
//
// ERROR logs must include:
//   - event_type: what failed
//   - error_hint: actionable next step
//   - error (via logging.Error()): the underlying error
//
// Use ErrorWithContext() helper to enforce error fields automatically.
//
// # Decision Logging
//
// Decision logs record choices that affect the event record. Required fields:
//   - decision_type: category (e.g., "change_classification", "site_visit_routing")
//   - decision_result: outcome (e.g., "accepted", "rejected", "applied", "fallback")
//   - decision_reason: why (e.g., "date_changed", "nonsense_below_threshold")
//   - decision_options: alternatives considered (e.g., "accept, reject")
//   - decision_selected: chosen value (optional, for explicit selection)
//
// When truncating lists to top-N items, include a *_hidden_count field to
// surface how many entries were omitted.
//
// # Common Fields
//
// Decision: decision_type, decision_result, decision_reason, decision_options, decision_selected
// Events: event_type (step_start, step_complete, step_failure)
// Errors: error_kind, error_operation, error_detail_path, error_code, error_hint, impact
//
// Prefer these constructors over hand-rolled slog setup to ensure new
// components emit data with the same shape and routing guarantees as the rest
// of the system.
package logging
