package cli

import (
	"context"
	"fmt"

	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/lbarrett/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the project mirror",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var clientID, color, externalID string
	var hourlyRate float64

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := &domain.Project{
				Name:       args[0],
				ClientID:   clientID,
				Color:      color,
				ExternalID: externalID,
				HourlyRate: hourlyRate,
			}
			if err := app.Projects.Create(context.Background(), project); err != nil {
				return err
			}
			fmt.Printf("Added project %s (%s).\n", formatter.StyleBold.Render(project.Name), project.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client id the project belongs to")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External workspace id")
	cmd.Flags().Float64Var(&hourlyRate, "rate", 0, "Hourly rate for billing display")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println(formatter.StyleDim.Render("No projects."))
				return nil
			}
			for _, p := range projects {
				line := formatter.ProjectStyle(p.Color).Render("▌") + " " + formatter.StyleBold.Render(p.Name)
				if p.HourlyRate > 0 {
					line += formatter.StyleDim.Render(fmt.Sprintf(" · %.0f/hr", p.HourlyRate))
				}
				fmt.Printf("%s\n    %s\n", line, formatter.StyleDim.Render(p.ID))
			}
			return nil
		},
	}
}
