// Command eventkernel is the operator CLI over the event-booking workflow
// kernel: status, queue inspection, HIL task approve/reject, and an ad hoc
// turn replay for diagnostics.
//
// Grounded on cmd/spindle/root.go's cobra scaffolding (a command context
// carrying shared flags, persistent config loading, subcommands registered
// on a root command). Unlike spindle's CLI, which always talks to a running
// daemon over a unix-socket IPC client, this CLI operates directly on the
// tenant document through internal/store the same way internal/eventapi
// does — there is no separate IPC server in this domain, and the document's
// file lock already arbitrates concurrent access between the CLI and a
// running eventkerneld.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var tenantFlag string
	var jsonOutput bool

	ctx := newCommandContext(&configFlag, &tenantFlag, &jsonOutput)

	rootCmd := &cobra.Command{
		Use:           "eventkernel",
		Short:         "Event-booking workflow kernel operator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&tenantFlag, "tenant", "t", "", "Tenant ID (defaults to the configured default_tenant_id)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newTasksCommand(ctx))
	rootCmd.AddCommand(newReplayTurnCommand(ctx))

	return rootCmd
}
