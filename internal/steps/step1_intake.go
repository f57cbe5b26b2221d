package steps

import (
	"eventkernel/internal/adapters"
	"eventkernel/internal/capture"
	"eventkernel/internal/classify"
	"eventkernel/internal/eventmodel"
)

// intakeConfidenceThreshold is the default manual-review gate threshold
// spec §4.3.1/§4.8 names ("confidence < 0.85 and no existing event-in-
// progress"); open question §9 flags 0.5 as the nonsense-gate baseline
// separately from this intake-specific threshold.
const intakeConfidenceThreshold = 0.85

// Step1 runs intake (spec §4.3.1): classifies the message, captures any
// embedded billing fragment and out-of-order fields, and populates
// requirements. A low-confidence message on a brand-new event is deferred
// to manual review rather than guessed at.
func Step1(deps Dependencies, turn Turn) Result {
	record := turn.Record
	record.CurrentStep = 1

	classification, _ := deps.Classifier.Classify(backgroundCtx, turn.MessageText, adapters.ClassificationContext{CurrentStep: 1})
	if classification.Ignored {
		return Result{Action: "nonsense_ignored", Halt: true}
	}

	eventInProgress := record.Status != eventmodel.StatusLead || record.CurrentStep > 1 || len(record.Offers) > 0
	if classification.NeedsConfidenceGate && classification.AgentConfidence < intakeConfidenceThreshold && !eventInProgress {
		task := eventmodel.Task{
			TaskID:  newTaskID(),
			Type:    eventmodel.TaskTypeManualReview,
			Status:  eventmodel.TaskPending,
			EventID: record.EventID,
			Payload: map[string]any{"step_id": 1, "reason": "low_confidence_intake", "message_preview": preview(turn.MessageText)},
		}
		turn.DB.Tasks = append(turn.DB.Tasks, task)
		record.ThreadState = eventmodel.ThreadAwaitingManagerReview
		return Result{Action: "intake_manual_review", Halt: true, ManualReviewTaskID: task.TaskID}
	}

	if fragment := ExtractBillingFragment(turn.MessageText); fragment != "" {
		if turn.UserInfo == nil {
			turn.UserInfo = map[string]any{}
		}
		turn.UserInfo["billing_address"] = fragment
	}
	capture.CaptureUserFields(record, turn.UserInfo, record.CurrentStep, "user_message")

	applyRequirements(record, turn.UserInfo)
	record.RequirementsHash = RequirementsHash(record.Requirements)

	record.CurrentStep = 2
	record.AppendAudit(1, 2, "intake_complete", "system", deps.now())
	return Result{Action: "intake_complete", Halt: false}
}

func applyRequirements(record *eventmodel.EventRecord, userInfo map[string]any) {
	if userInfo == nil {
		return
	}
	if raw, ok := userInfo["participants"]; ok {
		switch v := raw.(type) {
		case int:
			record.Requirements.Participants = v
		case float64:
			record.Requirements.Participants = int(v)
		case string:
			if n, ok := capture.ParticipantsFromString(v); ok {
				record.Requirements.Participants = n
			}
		}
	}
	if layout, ok := userInfo["layout"].(string); ok && layout != "" {
		record.Requirements.Layout = layout
	}
	if room, ok := userInfo["preferred_room"].(string); ok && room != "" {
		record.Requirements.PreferredRoom = room
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= 160 {
		return text
	}
	return string(runes[:160]) + "..."
}

// classifyNormalized is a thin re-export used by later step handlers that
// need the cheap-tier normalization without running the full classifier.
func classifyNormalized(message string) string {
	return classify.NormalizeText(message)
}
