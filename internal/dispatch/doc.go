// Package dispatch runs the step-routing loop a single inbound turn drives
// (spec §4.2): it dispatches to the internal/steps handler matching the
// event's current step, follows a handler's non-halting reroute into the
// next iteration, and stops as soon as a handler halts.
//
// Grounded on original_source/backend/workflows/runtime/router.py's
// dispatch_step/run_routing_loop. The Python original also re-runs its
// site-visit intercept at the top of every loop iteration
// (_check_site_visit_intercept) before calling dispatch_step; this package
// does not duplicate that call because every internal/steps handler already
// runs the same intercept first thing via preStepChecks, so a rerouted turn
// still gets the check on its very next dispatch. See DESIGN.md.
package dispatch

import (
	"fmt"

	"github.com/google/uuid"

	"eventkernel/internal/eventmodel"
	"eventkernel/internal/steps"
)

// DefaultMaxIterations mirrors the Python original's run_routing_loop default.
const DefaultMaxIterations = 6

type stepFunc func(steps.Dependencies, steps.Turn) steps.Result

var stepTable = map[int]stepFunc{
	1: steps.Step1,
	2: steps.Step2,
	3: steps.Step3,
	4: steps.Step4,
	5: steps.Step5,
	6: steps.Step6,
	7: steps.Step7,
}

// Run dispatches turn through the step table until a handler halts, reroutes
// past maxIterations, or lands on an unrecognized step. maxIterations <= 0
// falls back to DefaultMaxIterations.
func Run(deps steps.Dependencies, turn steps.Turn, maxIterations int) steps.Result {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	var last steps.Result
	for i := 0; i < maxIterations; i++ {
		result, ok := dispatchStep(deps, turn)
		if !ok {
			return last
		}
		last = result
		if result.Halt {
			return result
		}
		if result.Reroute != 0 {
			turn.Record.CurrentStep = result.Reroute
		}
	}
	return last
}

// dispatchStep invokes the handler for the record's current step, recovering
// from a handler panic the way spec §7's error table requires for "Step
// handler unhandled exception": escalate to manager review with a message
// preview rather than letting the panic reach the caller. ok is false when
// the current step has no registered handler, mirroring the Python
// original's "unrecognized step, stop looping" behavior.
func dispatchStep(deps steps.Dependencies, turn steps.Turn) (result steps.Result, ok bool) {
	fn, exists := stepTable[turn.Record.CurrentStep]
	if !exists {
		return steps.Result{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			result = recoverToManualReview(turn, r)
			ok = true
		}
	}()

	return fn(deps, turn), true
}

func recoverToManualReview(turn steps.Turn, recovered any) steps.Result {
	record := turn.Record
	taskID := uuid.NewString()
	record.ThreadState = eventmodel.ThreadAwaitingManagerReview
	turn.DB.Tasks = append(turn.DB.Tasks, eventmodel.Task{
		TaskID:  taskID,
		Type:    eventmodel.TaskTypeManualReview,
		Status:  eventmodel.TaskPending,
		EventID: record.EventID,
		Payload: map[string]any{
			"step_id":         record.CurrentStep,
			"reason":          "step_handler_exception",
			"error":           fmt.Sprintf("%v", recovered),
			"message_preview": previewText(turn.MessageText),
		},
	})
	return steps.Result{Action: "step_handler_panic", Halt: true, ManualReviewTaskID: taskID}
}

func previewText(text string) string {
	runes := []rune(text)
	if len(runes) <= 160 {
		return text
	}
	return string(runes[:160]) + "..."
}
