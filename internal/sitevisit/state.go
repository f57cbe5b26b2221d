package sitevisit

import "eventkernel/internal/eventmodel"

// IsActive reports whether a site-visit flow is currently awaiting a date
// selection from the client. Mirrors is_site_visit_active.
func IsActive(state eventmodel.SiteVisitState) bool {
	return state.Status == eventmodel.SiteVisitDatePending
}

// IsScheduled reports whether the site visit has a confirmed date.
// Mirrors is_site_visit_scheduled.
func IsScheduled(state eventmodel.SiteVisitState) bool {
	return state.Status == eventmodel.SiteVisitScheduled
}

// StartFlow begins a new site-visit booking flow. Since visits are
// venue-wide, this goes straight to date_pending; there is no room-selection
// step. Mirrors start_site_visit_flow.
func StartFlow(state *eventmodel.SiteVisitState, initiatedAtStep int) {
	state.Status = eventmodel.SiteVisitDatePending
	state.DateISO = ""
	state.TimeSlot = ""
	state.ProposedSlots = nil
	state.InitiatedAtStep = initiatedAtStep
	state.HasEventConflict = false
}

// SetDate confirms the site visit for dateISO (and optional timeSlot) and
// moves the state to scheduled. Mirrors set_site_visit_date.
func SetDate(state *eventmodel.SiteVisitState, dateISO, timeSlot string) {
	state.DateISO = dateISO
	if timeSlot != "" {
		state.TimeSlot = timeSlot
	}
	state.Status = eventmodel.SiteVisitScheduled
}

// MarkConflict flags that an event was booked on the site visit's date
// after the fact — allowed, but the manager must be notified. Mirrors
// mark_site_visit_conflict.
func MarkConflict(state *eventmodel.SiteVisitState) {
	state.HasEventConflict = true
}

// Complete marks the site visit as having actually taken place. Mirrors
// complete_site_visit.
func Complete(state *eventmodel.SiteVisitState) {
	state.Status = eventmodel.SiteVisitCompleted
}

// Cancel marks the site visit as cancelled. Mirrors cancel_site_visit.
func Cancel(state *eventmodel.SiteVisitState) {
	state.Status = eventmodel.SiteVisitCancelled
}

// Reset returns the site-visit state to idle. Mirrors reset_site_visit_state.
func Reset(state *eventmodel.SiteVisitState) {
	state.Status = eventmodel.SiteVisitIdle
	state.DateISO = ""
	state.TimeSlot = ""
	state.ProposedSlots = nil
	state.InitiatedAtStep = 0
	state.HasEventConflict = false
}
