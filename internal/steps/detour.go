package steps

import (
	"fmt"

	"eventkernel/internal/changedetect"
	"eventkernel/internal/eventmodel"
	"eventkernel/internal/sitevisit"
)

// detourAcknowledgment renders the "Got it, updating..." line spec §4.4
// requires before a detour signal reaches the dispatcher, using the
// date_change_detour template for date changes and a generic fallback for
// the other change types (the original source only wrote bespoke copy for
// the date case; room/requirements/products detours reuse this fallback).
func detourAcknowledgment(deps Dependencies, changeType changedetect.ChangeType, userInfo map[string]any) string {
	switch changeType {
	case changedetect.ChangeDate:
		date, _ := userInfo["date"].(string)
		body, err := deps.Verbalizer.Render(backgroundCtx, "date_change_detour", map[string]string{"date": date})
		if err == nil {
			return body
		}
		return fmt.Sprintf("Got it, updating your date to %s — let me re-check the rooms.", date)
	case changedetect.ChangeRoom:
		return "Got it, let me re-check availability for the room you'd like instead."
	case changedetect.ChangeRequirements:
		return "Got it, updating your requirements — let me re-check what fits."
	case changedetect.ChangeProducts:
		return "Got it, updating your extras — let me revise the offer."
	default:
		return "Got it, updating your request."
	}
}

// tryDetour runs the change detector and DAG router for the given step
// (spec §4.4) and, if a change is detected, mutates record in place,
// appends the audit entry, and returns the detour Result with halt=false
// so the dispatcher's next iteration enters the target step. The bool
// return is false when no detour fired and the caller should proceed with
// its own main handling.
func tryDetour(deps Dependencies, turn Turn, fromStep int, isQuestion, isGeneralQnA bool, isAcceptance bool, acceptanceConfidence float64) (Result, bool) {
	record := turn.Record
	input := changedetect.DetectionInput{
		MessageText:          turn.MessageText,
		UserInfo:             turn.UserInfo,
		IsQuestion:           isQuestion,
		IsGeneralQnA:         isGeneralQnA,
		IsAcceptance:         isAcceptance,
		AcceptanceConfidence: acceptanceConfidence,
		SiteVisitActive:      sitevisit.IsActive(record.SiteVisit),
		BillingCaptureActive: record.BillingRequirements.AwaitingBillingForAccept,
	}
	detection := changedetect.DetectChangeType(record, input)
	if !detection.IsChange {
		return Result{}, false
	}

	decision := changedetect.RouteChangeOnUpdatedVariable(record, detection.ChangeType, fromStep)
	if decision.SkipReason != "" {
		return Result{}, false
	}

	record.CallerStep = decision.UpdatedCallerStep
	record.CurrentStep = decision.NextStep
	reason := "change_detected:" + string(detection.ChangeType)
	record.AppendAudit(fromStep, decision.NextStep, reason, "system", deps.now())

	threadState := eventmodel.ThreadAwaitingClient
	if decision.NextStep == 4 {
		threadState = eventmodel.ThreadWaitingOnHIL
	}
	record.ThreadState = threadState

	body := detourAcknowledgment(deps, detection.ChangeType, turn.UserInfo)
	return Result{
		Action:    "structural_change_detour",
		DraftBody: body,
		Topic:     "change_detour",
		Halt:      false,
		Reroute:   decision.NextStep,
	}, true
}
