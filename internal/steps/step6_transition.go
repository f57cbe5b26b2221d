package steps

// Step6 is the minimal bridge between negotiation and confirmation once HIL
// approves an offer (spec §4.3.6): it has no message-classification logic of
// its own, it only stamps the transition marker and hands off to Step 7.
func Step6(deps Dependencies, turn Turn) Result {
	record := turn.Record
	record.CurrentStep = 6
	record.GatekeeperPassed["step6"] = true
	record.AppendAudit(6, 7, "transition_ready", "system", deps.now())
	record.CurrentStep = 7
	return Step7(deps, turn)
}
