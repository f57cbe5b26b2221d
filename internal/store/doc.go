// Package store persists the per-tenant event database as a single JSON
// document guarded by a sibling lock file.
//
// A Store resolves the document path for a tenant, acquires the file lock for
// the duration of a load→mutate→save cycle, and writes back atomically via a
// temp file, fsync, and rename. Callers acquire a Lease, read the document,
// mutate it in memory, and save it before releasing the lease; the lease
// keeps the same underlying file lock held across the whole cycle so no
// other process can observe a partially-applied turn.
//
// Schema migration is handled by eventmodel.Database.Backfill, which runs on
// every load so legacy documents gain any fields added since they were last
// written.
package store
