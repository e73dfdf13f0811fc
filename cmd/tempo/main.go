package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lbarrett/tempo/internal/cli"
	"github.com/lbarrett/tempo/internal/db"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.tempo/tempo.db
	dbPath := os.Getenv("TEMPO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tempo", "tempo.db")
	}

	addr := os.Getenv("TEMPO_ADDR")
	if addr == "" {
		addr = ":8787"
	}

	// Display timezone; persisted instants are always UTC.
	loc := time.Local
	if tz := os.Getenv("TEMPO_TZ"); tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("loading TEMPO_TZ: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("TEMPO_LOG")),
	}))

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("TEMPO_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Timer:    service.NewTimerService(entryRepo, uow, observer, nil),
		Entries:  service.NewEntryService(entryRepo, uow, loc, observer),
		Tasks:    service.NewTaskService(taskRepo),
		Projects: service.NewProjectService(projectRepo),
		Clients:  service.NewClientService(clientRepo),
		Loc:      loc,
		Addr:     addr,
		Logger:   logger,
	}

	// Detect interactive terminal for form and day-view entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
