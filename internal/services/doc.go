// Package services defines shared utilities consumed by the turn runner,
// step handlers, and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp event IDs, step numbers, tenant IDs, and
//     correlation identifiers for logging and tracing.
//
// Structured error classification lives in internal/workflowerr; external
// collaborator abstractions (LLM, calendar, catalog) live in
// internal/adapters.
package services
