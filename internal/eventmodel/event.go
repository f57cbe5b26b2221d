package eventmodel

import "time"

// EventRecord is the central aggregate for a single client booking inquiry (§3).
type EventRecord struct {
	EventID       string    `json:"event_id"`
	ThreadID      string    `json:"thread_id"`
	ClientEmail   string    `json:"client_email"`
	CreatedAt     time.Time `json:"created_at"`
	Status        EventStatus `json:"status"`

	// Workflow cursor.
	CurrentStep  int         `json:"current_step"`
	CallerStep   int         `json:"caller_step,omitempty"`
	SubflowGroup string      `json:"subflow_group,omitempty"`
	ThreadState  ThreadState `json:"thread_state"`

	// Requested facts.
	ChosenDate      string          `json:"chosen_date,omitempty"`
	DateConfirmed   bool            `json:"date_confirmed"`
	RequestedWindow RequestedWindow `json:"requested_window"`
	LockedRoomID    string          `json:"locked_room_id,omitempty"`
	Requirements    Requirements    `json:"requirements"`
	RequirementsHash string         `json:"requirements_hash,omitempty"`
	RoomEvalHash     string         `json:"room_eval_hash,omitempty"`

	// Commerce.
	Offers             []Offer            `json:"offers"`
	CurrentOfferID     string             `json:"current_offer_id,omitempty"`
	OfferSequence      int                `json:"offer_sequence"`
	OfferAccepted      bool               `json:"offer_accepted"`
	OfferStatus        string             `json:"offer_status,omitempty"`
	Products           []string           `json:"products"`
	SelectedCatering   []string           `json:"selected_catering"`
	PricingInputs      map[string]any     `json:"pricing_inputs,omitempty"`
	Deposit            Deposit            `json:"deposit"`
	BillingDetails     BillingDetails     `json:"billing_details"`
	BillingRequirements BillingRequirements `json:"billing_requirements"`

	// Out-of-order capture (§4.9).
	Captured        map[string]any `json:"captured"`
	CapturedSources []string       `json:"captured_sources"`
	DeferredIntents []string       `json:"deferred_intents"`

	// Negotiation (§4.3.5).
	Negotiation               NegotiationState `json:"negotiation_state"`
	NegotiationPendingDecision string          `json:"negotiation_pending_decision,omitempty"`

	// Site visit (§4.10).
	SiteVisit SiteVisitState `json:"site_visit_state"`

	// Confirmation gate (§4.5).
	Confirmation ConfirmationState `json:"confirmation_state"`

	// HIL (§4.6).
	PendingHILRequests []HILRequest `json:"pending_hil_requests"`
	HILHistory         []HILHistoryEntry `json:"hil_history"`

	// Audit (append-only, invariant 7).
	Audit []AuditEntry `json:"audit"`
	Logs  []LogEntry   `json:"logs"`

	// Candidate date proposals (§4.11).
	CandidateDates           []string       `json:"candidate_dates,omitempty"`
	DateProposalAttempts     int            `json:"date_proposal_attempts"`
	DateProposalHistory      []string       `json:"date_proposal_history"`
	PendingDateConfirmation  bool           `json:"pending_date_confirmation"`
	PendingFutureConfirmation bool          `json:"pending_future_confirmation"`
	PendingTimeRequest       bool           `json:"pending_time_request"`

	// Gatekeeper flags (§C.8 supplement): per-step precondition success memo.
	GatekeeperPassed map[string]bool `json:"gatekeeper_passed"`

	// Language preference, used by the offer composer and date engine (§B domain stack).
	Language string `json:"language,omitempty"`
}

// RequestedWindow captures the date/time span requested for the event.
type RequestedWindow struct {
	DateISO string `json:"date_iso,omitempty"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Hash    string `json:"hash,omitempty"`
}

// Requirements is the structured fact set Step 3 and the change detector reason over.
type Requirements struct {
	Participants          int      `json:"participants,omitempty"`
	Layout                string   `json:"layout,omitempty"`
	PreferredRoom         string   `json:"preferred_room,omitempty"`
	SpecialRequirements   []string `json:"special_requirements,omitempty"`
	EventDurationHours    float64  `json:"event_duration_hours,omitempty"`
}

// Offer is one version of a composed offer (§4.3.4).
type Offer struct {
	OfferID   string      `json:"offer_id"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	LineItems []LineItem  `json:"line_items"`
	Subtotal  float64     `json:"subtotal"`
	DepositDue float64    `json:"deposit_due,omitempty"`
	DueDate   string      `json:"due_date,omitempty"`
}

// LineItem is one priced component of an offer.
type LineItem struct {
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    float64 `json:"quantity"`
	PerPerson   bool    `json:"per_person"`
	Total       float64 `json:"total"`
}

// Deposit centralizes both the current and legacy deposit representations the
// original source carried (§C.5 supplement) behind one accessor.
type Deposit struct {
	Required bool       `json:"required"`
	Percent  float64    `json:"percent,omitempty"`
	Amount   float64    `json:"amount,omitempty"`
	Paid     bool       `json:"paid"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`
	DueDate  string     `json:"due_date,omitempty"`
}

// BillingDetails holds the billing address fields the confirmation gate requires.
type BillingDetails struct {
	Company    string `json:"company,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	VAT        string `json:"vat,omitempty"`
}

// BillingRequirements tracks whether acceptance is waiting on billing capture.
type BillingRequirements struct {
	AwaitingBillingForAccept bool     `json:"awaiting_billing_for_accept"`
	LastMissing              []string `json:"last_missing,omitempty"`
}

// NegotiationState tracks counter-offer rounds (§4.3.5).
type NegotiationState struct {
	CounterCount        int    `json:"counter_count"`
	ManualReviewTaskID  string `json:"manual_review_task_id,omitempty"`
}

// SiteVisitState models the venue-wide site-visit subsystem (§4.10).
type SiteVisitState struct {
	Status            SiteVisitStatus `json:"status"`
	DateISO           string          `json:"date_iso,omitempty"`
	TimeSlot          string          `json:"time_slot,omitempty"`
	ProposedSlots     []string        `json:"proposed_slots,omitempty"`
	InitiatedAtStep   int             `json:"initiated_at_step,omitempty"`
	HasEventConflict  bool            `json:"has_event_conflict"`
}

// ConfirmationState tracks the pending confirmation-gate prompt kind.
type ConfirmationState struct {
	Pending          *PendingConfirmation `json:"pending,omitempty"`
	LastResponseType string               `json:"last_response_type,omitempty"`
}

// PendingConfirmation names which confirmation-gate prompt is outstanding.
type PendingConfirmation struct {
	Kind string `json:"kind"`
}

// HILRequest is an outstanding human-in-the-loop approval request (§4.6).
type HILRequest struct {
	TaskID    string `json:"task_id"`
	Signature string `json:"signature"`
	Step      int    `json:"step"`
	DraftBody string `json:"draft_body"`
	ThreadID  string `json:"thread_id"`
}

// HILHistoryEntry records a resolved HIL decision.
type HILHistoryEntry struct {
	TaskID     string    `json:"task_id"`
	ApprovedAt time.Time `json:"approved_at"`
	Notes      string    `json:"notes,omitempty"`
	Step       int       `json:"step"`
	Decision   string    `json:"decision"`
}

// AuditEntry records one step transition (invariant 7: append-only).
type AuditEntry struct {
	Timestamp time.Time `json:"ts"`
	Actor     string    `json:"actor"`
	FromStep  int       `json:"from_step"`
	ToStep    int       `json:"to_step"`
	Reason    string    `json:"reason"`
}

// LogEntry records a best-effort side-effect outcome (§7: "Calendar/external
// side-effect failure | log").
type LogEntry struct {
	Timestamp time.Time `json:"ts"`
	Message   string    `json:"message"`
}
