package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventkernel/internal/adapters"
	"eventkernel/internal/catalog"
	"eventkernel/internal/classify"
	"eventkernel/internal/steps"
	"eventkernel/internal/turn"
)

// newReplayTurnCommand drives one inbound message through the full step
// dispatcher against the live tenant document, for reproducing a reported
// turn outside of the HTTP surface.
func newReplayTurnCommand(ctx *commandContext) *cobra.Command {
	var email, threadID, message string

	cmd := &cobra.Command{
		Use:   "replay-turn",
		Short: "Replay one inbound message through the step dispatcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || message == "" {
				return fmt.Errorf("--email and --message are required")
			}

			cfg := ctx.configValue()
			deps := steps.Dependencies{
				Catalog:    catalog.New(adapters.DefaultStaticCatalog()),
				Calendar:   adapters.NewInMemoryCalendar(),
				Verbalizer: adapters.DefaultTemplateVerbalizer(),
				Classifier: classify.New(nil, cfg.NonsenseThreshold),
				Now:        func() time.Time { return time.Now().UTC() },
			}
			runner := turn.New(ctx.storeValue(), deps, cfg.TurnMaxStepIterations)

			outcome, err := runner.Handle(context.Background(), turn.Inbound{
				TenantID:    ctx.tenantID(),
				ClientEmail: email,
				ThreadID:    threadID,
				MessageText: message,
			})
			if err != nil {
				return fmt.Errorf("replay turn: %w", err)
			}

			out := cmd.OutOrStdout()
			if ctx.JSONMode() {
				return json.NewEncoder(out).Encode(outcome)
			}
			fmt.Fprintf(out, "Event: %s (created=%v)\n", outcome.EventID, outcome.Created)
			fmt.Fprintf(out, "Thread state: %s\n", outcome.ThreadState)
			fmt.Fprintf(out, "Requires approval: %v\n", outcome.RequiresApproval)
			if outcome.DraftBody != "" {
				fmt.Fprintln(out, "---")
				fmt.Fprintln(out, outcome.DraftBody)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Client email the message is from")
	cmd.Flags().StringVar(&threadID, "thread", "", "Thread ID (empty starts a new conversation)")
	cmd.Flags().StringVar(&message, "message", "", "Inbound message body")
	return cmd
}
