package gate

import "fmt"

// Prompt is the client-facing message the gate asks the step handler to
// send while a prerequisite is still outstanding.
type Prompt struct {
	BodyMarkdown     string
	Step             int
	Topic            string
	NextStep         string
	ThreadState      string
	RequiresApproval bool
}

// NextPrompt returns the prompt for the next outstanding prerequisite, or
// nil if the gate is already satisfied. Billing is always asked for before
// the deposit when both are missing, matching
// original_source's "arbitrary but consistent" ordering.
func NextPrompt(status Status, step int) *Prompt {
	if status.ReadyForHIL() {
		return nil
	}

	if !status.BillingComplete {
		body := fmt.Sprintf(
			"Thanks for confirming. I need the billing address before I can send this for approval.\n%s "+
				"Example: \"Helvetia Labs, Bahnhofstrasse 1, 8001 Zurich, Switzerland\". "+
				"As soon as I have it, I'll forward the offer automatically.",
			billingPromptForMissingFields(status.BillingMissing),
		)
		if status.DepositRequired && !status.DepositPaid && status.DepositAmount > 0 {
			body += fmt.Sprintf("\n\nNote: The deposit of CHF %.2f is also required before final confirmation.", status.DepositAmount)
		}
		return &Prompt{
			BodyMarkdown:     body,
			Step:             step,
			Topic:            "billing_details_required",
			NextStep:         "Await billing details",
			ThreadState:      "Awaiting Client",
			RequiresApproval: false,
		}
	}

	if status.DepositRequired && !status.DepositPaid {
		body := fmt.Sprintf(
			"Thank you for providing your billing details! Before I can proceed with your booking, "+
				"please complete the deposit payment of CHF %.2f. "+
				"Once the deposit is received, I'll immediately send your confirmation for final approval.",
			status.DepositAmount,
		)
		return &Prompt{
			BodyMarkdown:     body,
			Step:             step,
			Topic:            "deposit_reminder",
			NextStep:         "Awaiting deposit payment",
			ThreadState:      "Awaiting Client",
			RequiresApproval: false,
		}
	}

	return nil
}

func billingPromptForMissingFields(missing []string) string {
	if len(missing) == 0 {
		return "Please send your billing address."
	}
	result := "Please send: "
	for i, field := range missing {
		if i > 0 {
			result += ", "
		}
		result += humanizeField(field)
	}
	return result + "."
}

func humanizeField(field string) string {
	switch field {
	case "postal_code":
		return "postal code"
	default:
		return field
	}
}
