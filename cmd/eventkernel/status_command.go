package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"eventkernel/internal/eventmodel"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show event and task counts for a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return fmt.Errorf("configuration not available")
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			tenant := ctx.tenantID()

			var byStatus, byThreadState map[string]int
			var pendingTasks int

			err := ctx.storeValue().WithLock(context.Background(), tenant, func(db *eventmodel.Database) (bool, error) {
				byStatus = make(map[string]int)
				byThreadState = make(map[string]int)
				for _, event := range db.Events {
					byStatus[string(event.Status)]++
					byThreadState[string(event.ThreadState)]++
				}
				for _, task := range db.Tasks {
					if task.Status == eventmodel.TaskPending {
						pendingTasks++
					}
				}
				return false, nil
			})
			if err != nil {
				return fmt.Errorf("read tenant document: %w", err)
			}

			fmt.Fprintln(out, renderStatusLine("Tenant", statusInfo, tenant, colorize))
			fmt.Fprintln(out, renderStatusLine("Document", statusInfo, ctx.storeValue().DocumentPath(tenant), colorize))
			if pendingTasks > 0 {
				fmt.Fprintln(out, renderStatusLine("Pending HIL tasks", statusWarn, fmt.Sprintf("%d", pendingTasks), colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Pending HIL tasks", statusOK, "0", colorize))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Events by status")
			printCountTable(out, byStatus)

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Events by thread state")
			printCountTable(out, byThreadState)

			return nil
		},
	}
}

func printCountTable(out io.Writer, counts map[string]int) {
	if len(counts) == 0 {
		fmt.Fprintln(out, "none")
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprintf("%d", counts[k])})
	}
	fmt.Fprint(out, renderTable([]string{"Value", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
}
