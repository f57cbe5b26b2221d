package eventmodel

import (
	"time"

	"github.com/google/uuid"
)

// Database is the single document persisted per tenant (§3, §4.7).
type Database struct {
	Events  []EventRecord           `json:"events"`
	Clients map[string]ClientRecord `json:"clients"`
	Tasks   []Task                  `json:"tasks"`
	Config  map[string]any          `json:"config,omitempty"`
}

// NewDatabase returns the default empty document shape.
func NewDatabase() *Database {
	return &Database{
		Events:  []EventRecord{},
		Clients: map[string]ClientRecord{},
		Tasks:   []Task{},
	}
}

// FindEventIndex returns the index of the event with the given ID, or -1.
func (db *Database) FindEventIndex(eventID string) int {
	for i := range db.Events {
		if db.Events[i].EventID == eventID {
			return i
		}
	}
	return -1
}

// LastEventForEmail returns the index of the most recently created event
// (terminal or not) for the given client email, or -1 when none exists. Mirrors the original
// source's _last_event_for_email linking heuristic (§C.4 supplement).
func (db *Database) LastEventForEmail(email string) int {
	best := -1
	var bestCreated time.Time
	for i := range db.Events {
		ev := &db.Events[i]
		if ev.ClientEmail != email {
			continue
		}
		if best == -1 || ev.CreatedAt.After(bestCreated) {
			best = i
			bestCreated = ev.CreatedAt
		}
	}
	return best
}

// CreateEventEntry allocates a new EventRecord with a fresh event_id and the
// full default schema, matching original_source's create_event_entry, and
// appends it to the document.
func (db *Database) CreateEventEntry(clientEmail, threadID string, now time.Time) *EventRecord {
	ev := EventRecord{
		EventID:     uuid.NewString(),
		ThreadID:    threadID,
		ClientEmail: clientEmail,
		CreatedAt:   now,
		Status:      StatusLead,
		CurrentStep: 1,
		ThreadState: ThreadInProgress,
	}
	ev.ApplyDefaults()
	db.Events = append(db.Events, ev)
	return &db.Events[len(db.Events)-1]
}

// UpsertClient creates or returns the ClientRecord for the given email.
func (db *Database) UpsertClient(email string) *ClientRecord {
	if db.Clients == nil {
		db.Clients = map[string]ClientRecord{}
	}
	client, ok := db.Clients[email]
	if !ok {
		client = ClientRecord{Email: email}
	}
	db.Clients[email] = client
	c := db.Clients[email]
	return &c
}

// SaveClient writes back a mutated ClientRecord.
func (db *Database) SaveClient(client ClientRecord) {
	if db.Clients == nil {
		db.Clients = map[string]ClientRecord{}
	}
	db.Clients[client.Email] = client
}

// LinkEventToClient appends the event ID to the client's event list if absent.
func (db *Database) LinkEventToClient(email, eventID string) {
	client := db.UpsertClient(email)
	for _, id := range client.EventIDs {
		if id == eventID {
			return
		}
	}
	client.EventIDs = append(client.EventIDs, eventID)
	db.SaveClient(*client)
}

// Backfill runs every event and the document shape through defaults
// migration, matching original_source's ensure_event_defaults: idempotent,
// preserves existing keys, fills only what's missing.
func (db *Database) Backfill() {
	if db.Clients == nil {
		db.Clients = map[string]ClientRecord{}
	}
	if db.Events == nil {
		db.Events = []EventRecord{}
	}
	if db.Tasks == nil {
		db.Tasks = []Task{}
	}
	for i := range db.Events {
		db.Events[i].ApplyDefaults()
	}
}

// ApplyDefaults fills missing fields on a single event with safe defaults.
// Idempotent: calling it twice produces no further change.
func (ev *EventRecord) ApplyDefaults() {
	if ev.Status == "" {
		ev.Status = StatusLead
	}
	if ev.CurrentStep == 0 {
		ev.CurrentStep = 1
	}
	if ev.ThreadState == "" {
		ev.ThreadState = ThreadInProgress
	}
	if ev.Offers == nil {
		ev.Offers = []Offer{}
	}
	if ev.Products == nil {
		ev.Products = []string{}
	}
	if ev.SelectedCatering == nil {
		ev.SelectedCatering = []string{}
	}
	if ev.Captured == nil {
		ev.Captured = map[string]any{}
	}
	if ev.CapturedSources == nil {
		ev.CapturedSources = []string{}
	}
	if ev.DeferredIntents == nil {
		ev.DeferredIntents = []string{}
	}
	if ev.PendingHILRequests == nil {
		ev.PendingHILRequests = []HILRequest{}
	}
	if ev.HILHistory == nil {
		ev.HILHistory = []HILHistoryEntry{}
	}
	if ev.Audit == nil {
		ev.Audit = []AuditEntry{}
	}
	if ev.Logs == nil {
		ev.Logs = []LogEntry{}
	}
	if ev.DateProposalHistory == nil {
		ev.DateProposalHistory = []string{}
	}
	if ev.SiteVisit.Status == "" {
		ev.SiteVisit.Status = SiteVisitIdle
	}
	if ev.SiteVisit.ProposedSlots == nil {
		ev.SiteVisit.ProposedSlots = []string{}
	}
	if ev.GatekeeperPassed == nil {
		ev.GatekeeperPassed = map[string]bool{
			"step2": false,
			"step3": false,
			"step4": false,
			"step7": false,
		}
	}
	if ev.Language == "" {
		ev.Language = "en"
	}
}

// AppendAudit appends an append-only audit entry for a step transition
// (invariant 7), mirroring original_source's append_audit_entry.
func (ev *EventRecord) AppendAudit(fromStep, toStep int, reason, actor string, now time.Time) {
	if actor == "" {
		actor = "system"
	}
	ev.Audit = append(ev.Audit, AuditEntry{
		Timestamp: now.UTC(),
		Actor:     actor,
		FromStep:  fromStep,
		ToStep:    toStep,
		Reason:    reason,
	})
}

// AppendLog records a best-effort side-effect outcome without failing the turn.
func (ev *EventRecord) AppendLog(message string, now time.Time) {
	ev.Logs = append(ev.Logs, LogEntry{Timestamp: now.UTC(), Message: message})
}
