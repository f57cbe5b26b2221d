package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventkernel/internal/eventmodel"
	"eventkernel/internal/hil"
)

func newTasksCommand(ctx *commandContext) *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and decide human-in-the-loop approval tasks",
	}

	tasksCmd.AddCommand(newPendingTasksCommand(ctx))
	tasksCmd.AddCommand(newDecideTaskCommand(ctx, "approve"))
	tasksCmd.AddCommand(newDecideTaskCommand(ctx, "reject"))

	return tasksCmd
}

func newPendingTasksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List pending HIL tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pending []eventmodel.Task
			err := ctx.storeValue().WithLock(context.Background(), ctx.tenantID(), func(db *eventmodel.Database) (bool, error) {
				for _, task := range db.Tasks {
					if task.Status == eventmodel.TaskPending {
						pending = append(pending, task)
					}
				}
				return false, nil
			})
			if err != nil {
				return fmt.Errorf("read tenant document: %w", err)
			}

			out := cmd.OutOrStdout()
			if ctx.JSONMode() {
				return json.NewEncoder(out).Encode(pending)
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, "No pending tasks")
				return nil
			}
			rows := make([][]string, 0, len(pending))
			for _, task := range pending {
				rows = append(rows, []string{task.TaskID, string(task.Type), task.EventID, task.ClientID})
			}
			fmt.Fprint(out, renderTable(
				[]string{"Task ID", "Type", "Event ID", "Client"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newDecideTaskCommand(ctx *commandContext, action string) *cobra.Command {
	var notes string
	var editedMessage string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <task-id>", action),
		Short: fmt.Sprintf("%s a pending HIL task", action),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			var reply hil.Reply
			var decisionErr error
			err := ctx.storeValue().WithLock(context.Background(), ctx.tenantID(), func(db *eventmodel.Database) (bool, error) {
				now := time.Now().UTC()
				if action == "approve" {
					reply, decisionErr = hil.ApproveTask(db, taskID, now, notes, editedMessage)
				} else {
					reply, decisionErr = hil.RejectTask(db, taskID, now, notes)
				}
				if decisionErr != nil {
					return false, nil
				}
				return true, nil
			})
			if err != nil {
				return fmt.Errorf("update tenant document: %w", err)
			}
			if decisionErr != nil {
				return decisionErr
			}

			out := cmd.OutOrStdout()
			if ctx.JSONMode() {
				return json.NewEncoder(out).Encode(reply)
			}
			fmt.Fprintf(out, "Task %s %sd\n", taskID, action)
			if reply.DraftBody != "" {
				fmt.Fprintln(out, "---")
				fmt.Fprintln(out, reply.DraftBody)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Manager notes to attach to the decision")
	if action == "approve" {
		cmd.Flags().StringVar(&editedMessage, "message", "", "Replacement draft body, for an AI-reply approval")
	}
	return cmd
}
