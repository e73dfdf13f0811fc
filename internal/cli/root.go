package cli

import (
	"log/slog"
	"time"

	"github.com/lbarrett/tempo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timer    service.TimerService
	Entries  service.EntryService
	Tasks    service.TaskService
	Projects service.ProjectService
	Clients  service.ClientService

	// Loc is the display timezone; persisted instants stay UTC.
	Loc    *time.Location
	Addr   string
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal; forms and the
	// day view require it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Personal time tracker with a timeline day view",
	}

	root.AddCommand(
		newServeCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newAddCmd(app),
		newListCmd(app),
		newTaskCmd(app),
		newProjectCmd(app),
		newClientCmd(app),
		newDayCmd(app),
	)

	return root
}
