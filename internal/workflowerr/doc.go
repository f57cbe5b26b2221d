// Package workflowerr provides the structured error taxonomy used across the
// turn runner, step dispatcher, and step handlers (§7 of the workflow
// specification). It mirrors the ServiceError/sentinel pattern used
// elsewhere in this codebase's lineage: a handful of sentinel kinds that
// classify a failure, wrapped with stage/operation context, with a
// FailureStatus helper that decides the resulting thread state.
package workflowerr
