package steps

import (
	"eventkernel/internal/classify"
	"eventkernel/internal/sitevisit"
)

// trySiteVisitIntercept applies spec §4.10's interceptor: if a site-visit
// flow is already active (date_pending), the message is routed to slot
// parsing regardless of the owning step; otherwise, if no flow is active
// and the message carries site-visit intent, the flow starts. The bool
// return is false when neither condition applies and the caller should
// proceed with its own step logic.
func trySiteVisitIntercept(deps Dependencies, turn Turn, normalized string) (Result, bool) {
	record := turn.Record
	active := sitevisit.IsActive(record.SiteVisit)
	if !active && !sitevisit.IsSiteVisitIntent(normalized) {
		return Result{}, false
	}

	blocked := sitevisit.BlockedDates(turn.DB, record.EventID)
	detectedDate := sitevisit.ExtractDateFromMessage(turn.MessageText)
	outcome := sitevisit.HandleRequest(record, blocked, turn.MessageText, detectedDate, deps.now())

	return Result{
		Action:           "site_visit_" + string(record.SiteVisit.Status),
		DraftBody:        outcome.Body,
		Topic:            outcome.Topic,
		RequiresApproval: outcome.RequiresApproval,
		Halt:             true,
	}, true
}

// normalizeForSiteVisit is a thin alias over classify.NormalizeText so step
// handlers don't need to import classify solely for this one call.
func normalizeForSiteVisit(message string) string {
	return classify.NormalizeText(message)
}
