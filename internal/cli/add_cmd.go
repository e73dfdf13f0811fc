package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/service"
	"github.com/spf13/cobra"
)

const clockLayout = "15:04"

func newAddCmd(app *App) *cobra.Command {
	var (
		taskRef  string
		dateStr  string
		startStr string
		endStr   string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a time entry manually",
		Long:  "Add a backfilled time entry. With no flags on a terminal, an interactive form is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if taskRef == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return errors.New("--task is required in non-interactive mode")
				}
				if err := runAddForm(ctx, app, &taskRef, &dateStr, &startStr, &endStr); err != nil {
					return err
				}
			}

			taskID, err := resolveTask(ctx, app, taskRef)
			if err != nil {
				return err
			}

			day := time.Now().In(app.Loc)
			if dateStr != "" {
				day, err = time.ParseInLocation("2006-01-02", dateStr, app.Loc)
				if err != nil {
					return fmt.Errorf("invalid --date, expected YYYY-MM-DD: %w", err)
				}
			}
			start, err := clockOnDay(day, startStr, app.Loc)
			if err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}

			input := service.CreateEntryInput{TaskID: taskID, Start: start}
			switch {
			case endStr != "":
				end, err := clockOnDay(day, endStr, app.Loc)
				if err != nil {
					return fmt.Errorf("invalid end time: %w", err)
				}
				input.End = &end
			case cmd.Flags().Changed("duration") || duration > 0:
				secs := duration * 60
				input.DurationSeconds = &secs
			default:
				return errors.New("either --end or --duration is required")
			}

			entry, err := app.Entries.Create(ctx, input)
			if err != nil {
				return err
			}

			fmt.Printf("Added %s (%s-%s).\n",
				formatter.StyleBold.Render(formatter.FormatDurationHuman(entry.DurationSeconds)),
				entry.StartTime.In(app.Loc).Format(clockLayout),
				entry.EndTime.In(app.Loc).Format(clockLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskRef, "task", "", "Task id or name")
	cmd.Flags().StringVar(&dateStr, "date", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&startStr, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endStr, "end", "", "End time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (alternative to --end)")

	return cmd
}

// runAddForm collects the entry fields interactively.
func runAddForm(ctx context.Context, app *App, taskRef, dateStr, startStr, endStr *string) error {
	details, err := app.Tasks.ListDetail(ctx, repository.TaskFilter{})
	if err != nil {
		return err
	}
	if len(details) == 0 {
		return errors.New("no tasks exist yet; add one with: tempo task add")
	}

	options := make([]huh.Option[string], 0, len(details))
	for _, d := range details {
		label := d.Task.Name
		if d.ProjectName != "" {
			label += " · " + d.ProjectName
		}
		options = append(options, huh.NewOption(label, d.Task.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task").
				Options(options...).
				Value(taskRef),
			huh.NewInput().
				Title("Date (YYYY-MM-DD, blank for today)").
				Placeholder(time.Now().In(app.Loc).Format("2006-01-02")).
				Value(dateStr).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Start (HH:MM)").
				Placeholder("09:00").
				Value(startStr).
				Validate(validateClock),
			huh.NewInput().
				Title("End (HH:MM)").
				Placeholder("10:30").
				Value(endStr).
				Validate(validateClock),
		),
	).WithShowHelp(false)

	return form.Run()
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return errors.New("expected YYYY-MM-DD")
	}
	return nil
}

func validateClock(s string) error {
	_, err := time.Parse(clockLayout, s)
	if err != nil {
		return errors.New("expected HH:MM")
	}
	return nil
}

// clockOnDay combines a HH:MM string with a calendar day in loc.
func clockOnDay(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(clockLayout, clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}
