// Package turn implements the turn boundary spec §4.1 describes: given an
// inbound message for a tenant, acquire the tenant's document lock, resolve
// (or create) the event the message belongs to, run it through the step
// dispatcher, persist the mutated document, and release the lock.
//
// Grounded on internal/store (already implements the acquire/load/persist/
// release cycle) and original_source/backend/workflows/runtime/router.py,
// which resolves the event the same way: look up the client's most recent
// in-progress event first, otherwise open a fresh one.
package turn

import (
	"context"
	"fmt"
	"time"

	"eventkernel/internal/dispatch"
	"eventkernel/internal/eventmodel"
	"eventkernel/internal/steps"
	"eventkernel/internal/store"
	"eventkernel/internal/workflowerr"
)

// Inbound describes one message arriving for a tenant.
type Inbound struct {
	TenantID    string
	ClientEmail string
	ThreadID    string
	MessageText string
	UserInfo    map[string]any
}

// Outcome is what a completed turn hands back to the HTTP layer.
type Outcome struct {
	EventID             string
	DraftBody           string
	Topic               string
	RequiresApproval    bool
	ManualReviewTaskID  string
	ThreadState         eventmodel.ThreadState
	Created             bool
}

// Runner wires a Store to the step dispatcher's Dependencies.
type Runner struct {
	Store         *store.Store
	Deps          steps.Dependencies
	MaxIterations int
}

// New builds a Runner over the given store and step dependencies.
func New(st *store.Store, deps steps.Dependencies, maxIterations int) *Runner {
	return &Runner{Store: st, Deps: deps, MaxIterations: maxIterations}
}

// Handle resolves the event for in.ClientEmail (creating one if none exists),
// runs it through dispatch.Run inside the tenant's document lock, and
// persists the result. A lock-timeout error is returned unwrapped so the
// caller can decide whether to retry (spec §7: lock_timeout is retryable).
func (r *Runner) Handle(ctx context.Context, in Inbound) (Outcome, error) {
	var outcome Outcome

	err := r.Store.WithLock(ctx, in.TenantID, func(db *eventmodel.Database) (bool, error) {
		record, created := resolveEvent(db, in, r.now())
		outcome.EventID = record.EventID
		outcome.Created = created

		t := steps.Turn{
			DB:          db,
			Record:      record,
			MessageText: in.MessageText,
			UserInfo:    in.UserInfo,
			ThreadID:    record.ThreadID,
		}

		result := dispatch.Run(r.Deps, t, r.MaxIterations)

		outcome.DraftBody = result.DraftBody
		outcome.Topic = result.Topic
		outcome.RequiresApproval = result.RequiresApproval
		outcome.ManualReviewTaskID = result.ManualReviewTaskID
		outcome.ThreadState = record.ThreadState

		return true, nil
	})
	if err != nil {
		return Outcome{}, wrapTurnError(err)
	}
	return outcome, nil
}

// resolveEvent takes the most recent event for the client's email and reuses
// it, or creates a new one, matching original_source's thread-to-event
// linking: the prior event is not reused when it is Confirmed/Cancelled, the
// inbound message names a different date than the one already chosen, or
// its site visit is no longer idle.
func resolveEvent(db *eventmodel.Database, in Inbound, now time.Time) (*eventmodel.EventRecord, bool) {
	if idx := db.LastEventForEmail(in.ClientEmail); idx >= 0 {
		record := &db.Events[idx]
		if !record.Status.Terminal() && !namesDifferentDate(record, in) && record.SiteVisit.Status == eventmodel.SiteVisitIdle {
			record.ThreadID = in.ThreadID
			return record, false
		}
	}
	record := db.CreateEventEntry(in.ClientEmail, in.ThreadID, now)
	db.LinkEventToClient(in.ClientEmail, record.EventID)
	return record, true
}

// namesDifferentDate reports whether the inbound message names a date that
// conflicts with the date already chosen on a prior event for this client.
func namesDifferentDate(record *eventmodel.EventRecord, in Inbound) bool {
	if record.ChosenDate == "" || in.UserInfo == nil {
		return false
	}
	named, _ := in.UserInfo["date"].(string)
	return named != "" && named != record.ChosenDate
}

func (r *Runner) now() time.Time {
	if r.Deps.Now != nil {
		return r.Deps.Now()
	}
	return time.Now().UTC()
}

func wrapTurnError(err error) error {
	if workflowerr.IsRetryable(err) {
		return err
	}
	return fmt.Errorf("turn handling failed: %w", err)
}
