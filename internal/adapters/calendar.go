package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CalendarEventInput describes the block to create on the shared venue
// calendar, grounded on original_source's create_calendar_event(entry, kind).
type CalendarEventInput struct {
	EventID     string
	Title       string
	DateISO     string
	RoomID      string
	Kind        string // "lead", "option", "confirmed", "site_visit"
}

// CalendarEvent is the collaborator's acknowledgement of a created block.
type CalendarEvent struct {
	ID string
}

// Calendar is the shared venue calendar the kernel consults for feasibility
// checks and writes confirmed/tentative blocks to. Failures here are
// best-effort: a calendar error never fails the booking (spec §7 "Calendar/
// external side-effect failure | log").
type Calendar interface {
	// CreateEvent writes a new calendar block and returns its identifier.
	CreateEvent(ctx context.Context, input CalendarEventInput) (CalendarEvent, error)
	// HasConflict reports whether dateISO is already blocked for a reason
	// that should prevent booking (spec §4.10's "hard block" on any day
	// with an already-scheduled event of the same tenant).
	HasConflict(ctx context.Context, dateISO string, excludeEventID string) (bool, error)
}

// InMemoryCalendar is a deterministic Calendar fake backed by a set of
// blocked dates, suitable for tests and for running without a real calendar
// integration configured.
type InMemoryCalendar struct {
	mu      sync.Mutex
	nextID  int
	blocked map[string]string // dateISO -> eventID
}

// NewInMemoryCalendar builds an empty calendar fake.
func NewInMemoryCalendar() *InMemoryCalendar {
	return &InMemoryCalendar{blocked: make(map[string]string)}
}

func (c *InMemoryCalendar) CreateEvent(_ context.Context, input CalendarEventInput) (CalendarEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	if input.DateISO != "" {
		c.blocked[input.DateISO] = input.EventID
	}
	return CalendarEvent{ID: idForSequence(c.nextID)}, nil
}

func (c *InMemoryCalendar) HasConflict(_ context.Context, dateISO string, excludeEventID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owner, blocked := c.blocked[dateISO]
	if !blocked {
		return false, nil
	}
	return owner != excludeEventID, nil
}

// Clear removes every blocked date, matching spec §5's "every such cache
// must expose a clear() affordance" requirement extended to test fakes.
func (c *InMemoryCalendar) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocked = make(map[string]string)
}

func idForSequence(n int) string {
	return fmt.Sprintf("cal-%s-%d", time.Now().UTC().Format("20060102"), n)
}
