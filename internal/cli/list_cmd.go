package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	date := newDateValue(app.Loc)
	from := newDateValue(app.Loc)
	to := newDateValue(app.Loc)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries for a day or date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var (
				details []repository.EntryDetail
				err     error
			)
			if from.set || to.set {
				if !from.set || !to.set {
					return fmt.Errorf("--from and --to must be given together")
				}
				details, err = app.Entries.ListForRange(ctx, from.t, to.t)
			} else {
				details, err = app.Entries.ListForDay(ctx, date.Or(time.Now().In(app.Loc)))
			}
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatEntryList(details, app.Loc))
			return nil
		},
	}

	cmd.Flags().Var(date, "date", "Day to list (YYYY-MM-DD, default today)")
	cmd.Flags().Var(from, "from", "Range start date (YYYY-MM-DD)")
	cmd.Flags().Var(to, "to", "Range end date (YYYY-MM-DD)")

	return cmd
}
