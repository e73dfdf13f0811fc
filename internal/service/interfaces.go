package service

import (
	"context"
	"time"

	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/repository"
)

// StartResult reports what a Start call did: the entry now running, the
// previously open entry it closed (if any), and whether the call was a
// no-op because the task already owned the running timer.
type StartResult struct {
	Entry   *domain.TimeEntry
	Stopped *domain.TimeEntry
	Resumed bool
}

type TimerService interface {
	// Start opens a timer for the task, transactionally closing any entry
	// that is currently running. Starting the task that already owns the
	// open entry resumes it unchanged.
	Start(ctx context.Context, taskID string) (*StartResult, error)
	// Stop closes the given open entry at now. ErrAlreadyStopped when the
	// entry exists but has an end time.
	Stop(ctx context.Context, entryID string) (*domain.TimeEntry, error)
	// Active returns the running entry joined with its task/project/client
	// identity, or nil when no timer is running.
	Active(ctx context.Context) (*repository.EntryDetail, error)
}

// CreateEntryInput describes a manual (backfilled) entry. Exactly one of End
// and DurationSeconds may be omitted; the missing one is derived.
type CreateEntryInput struct {
	TaskID          string
	Start           time.Time
	End             *time.Time
	DurationSeconds *int
}

// UpdateEntryInput replaces an entry's interval. The stored duration is
// always re-derived from the endpoints.
type UpdateEntryInput struct {
	Start time.Time
	End   time.Time
}

type EntryService interface {
	Get(ctx context.Context, id string) (*domain.TimeEntry, error)
	// ListForDay returns the entries of one calendar day, with day
	// boundaries resolved in the configured display timezone.
	ListForDay(ctx context.Context, day time.Time) ([]repository.EntryDetail, error)
	// ListForRange covers the inclusive calendar-date range [from, to].
	ListForRange(ctx context.Context, from, to time.Time) ([]repository.EntryDetail, error)
	Create(ctx context.Context, in CreateEntryInput) (*domain.TimeEntry, error)
	Update(ctx context.Context, id string, in UpdateEntryInput) (*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, f repository.TaskFilter) ([]*domain.Task, error)
	ListDetail(ctx context.Context, f repository.TaskFilter) ([]repository.TaskDetail, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}
