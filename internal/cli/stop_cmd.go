package cli

import (
	"context"
	"fmt"

	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			active, err := app.Timer.Active(ctx)
			if err != nil {
				return err
			}
			if active == nil {
				fmt.Println("No timer running.")
				return nil
			}

			entry, err := app.Timer.Stop(ctx, active.Entry.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Stopped %s after %s.\n",
				formatter.StyleBold.Render(active.TaskName),
				formatter.FormatDurationHuman(entry.DurationSeconds))
			return nil
		},
	}
}
