package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <task>",
		Short: "Start a timer for a task (closes any running timer)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			taskID, err := resolveTask(ctx, app, args[0])
			if err != nil {
				return err
			}

			result, err := app.Timer.Start(ctx, taskID)
			if err != nil {
				return err
			}

			if result.Resumed {
				elapsed := int(time.Now().UTC().Sub(result.Entry.StartTime).Seconds())
				fmt.Printf("Timer already running on this task (%s).\n", formatter.FormatDurationCompact(elapsed))
				return nil
			}
			if result.Stopped != nil {
				fmt.Printf("Stopped previous timer (%s).\n", formatter.FormatDurationCompact(result.Stopped.DurationSeconds))
			}
			fmt.Printf("%s  started %s\n", formatter.RunningIndicator(),
				result.Entry.StartTime.In(app.Loc).Format("15:04"))
			return nil
		},
	}
}
