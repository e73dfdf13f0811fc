package cli

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	date := newDateValue(app.Loc)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Interactive timeline view of one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return errors.New("the day view needs an interactive terminal")
			}

			model := newDayModel(app, date.Or(time.Now().In(app.Loc)))
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().Var(date, "date", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}
