package cli

import (
	"context"
	"fmt"

	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task mirror",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectID, externalID string
	var billable bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := &domain.Task{
				Name:       args[0],
				ProjectID:  projectID,
				ExternalID: externalID,
				Billable:   billable,
			}
			if err := app.Tasks.Create(context.Background(), task); err != nil {
				return err
			}
			fmt.Printf("Added task %s (%s).\n", formatter.StyleBold.Render(task.Name), task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id to attach the task to")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External workspace id")
	cmd.Flags().BoolVar(&billable, "billable", true, "Whether time on this task is billable")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var status, projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with project context and tracked totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := app.Tasks.ListDetail(context.Background(), repository.TaskFilter{
				Status:    status,
				ProjectID: projectID,
			})
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTaskList(details))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project id")

	return cmd
}
