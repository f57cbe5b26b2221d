// Package eventmodel defines the domain aggregates persisted per tenant:
// EventRecord, ClientRecord, and Task, plus the enums and nested value
// types that compose them (§3 of the workflow specification).
//
// Types here are plain structs with JSON tags rather than a query-backed
// schema: the whole aggregate is serialized to and from a single JSON
// document per tenant by internal/store. Defaulting logic lives in
// Database.Backfill, not in constructors, so that a document loaded from
// disk and a document built in a test both pass through the same
// migration path.
package eventmodel
