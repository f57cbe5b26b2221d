package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"eventkernel/internal/eventmodel"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect events held in the tenant document",
	}

	var statusFilter []string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally filtered by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := make(map[string]struct{}, len(statusFilter))
			for _, s := range statusFilter {
				filter[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
			}

			var events []eventmodel.EventRecord
			err := ctx.storeValue().WithLock(context.Background(), ctx.tenantID(), func(db *eventmodel.Database) (bool, error) {
				for _, event := range db.Events {
					if len(filter) > 0 {
						if _, ok := filter[strings.ToLower(string(event.Status))]; !ok {
							continue
						}
					}
					events = append(events, event)
				}
				return false, nil
			})
			if err != nil {
				return fmt.Errorf("read tenant document: %w", err)
			}

			out := cmd.OutOrStdout()
			if ctx.JSONMode() {
				return json.NewEncoder(out).Encode(events)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No events")
				return nil
			}

			sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.EventID, event.ClientEmail, string(event.Status),
					string(event.ThreadState), fmt.Sprintf("%d", event.CurrentStep), event.ChosenDate,
				})
			}
			fmt.Fprint(out, renderTable(
				[]string{"Event ID", "Client", "Status", "Thread State", "Step", "Chosen Date"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	listCmd.Flags().StringSliceVarP(&statusFilter, "status", "s", nil, "Filter by event status (repeatable)")
	queueCmd.AddCommand(listCmd)

	showCmd := &cobra.Command{
		Use:   "show <event-id>",
		Short: "Print the full record for one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]
			var found *eventmodel.EventRecord
			err := ctx.storeValue().WithLock(context.Background(), ctx.tenantID(), func(db *eventmodel.Database) (bool, error) {
				if idx := db.FindEventIndex(eventID); idx >= 0 {
					record := db.Events[idx]
					found = &record
				}
				return false, nil
			})
			if err != nil {
				return fmt.Errorf("read tenant document: %w", err)
			}
			if found == nil {
				return fmt.Errorf("event %s not found", eventID)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(found)
		},
	}
	queueCmd.AddCommand(showCmd)

	return queueCmd
}
