package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer and today's total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now().UTC()

			active, err := app.Timer.Active(ctx)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatActive(active, now))

			details, err := app.Entries.ListForDay(ctx, now.In(app.Loc))
			if err != nil {
				return err
			}
			total := 0
			for _, d := range details {
				if d.Entry.EndTime != nil {
					total += d.Entry.DurationSeconds
				} else {
					total += int(now.Sub(d.Entry.StartTime).Seconds())
				}
			}
			fmt.Printf("Today: %s across %d entries.\n",
				formatter.StyleBold.Render(formatter.FormatDurationHuman(total)), len(details))
			return nil
		},
	}
}
