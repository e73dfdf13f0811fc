package repository

import (
	"context"
	"time"

	"github.com/lbarrett/tempo/internal/domain"
)

// EntryDetail is a time entry joined with the task/project/client identity it
// rolls up to, plus the display and billing fields the timeline and billing
// views read. Produced by list/active queries, never written back.
type EntryDetail struct {
	Entry domain.TimeEntry

	TaskName          string
	ProjectID         string
	ProjectExternalID string
	ProjectName       string
	ProjectColor      string
	ProjectIconType   string
	ProjectIconValue  string
	HourlyRate        float64
	Billable          bool
	ClientID          string
	ClientName        string
}

// TaskDetail is a task joined with its project/client names and aggregate
// logged time, mirroring the task list the workspace UI shows.
type TaskDetail struct {
	Task domain.Task

	ProjectName string
	ClientID    string
	ClientName  string
	TotalHours  float64
	ActiveStart *time.Time
}

// TaskFilter narrows task listings; zero values mean no constraint.
type TaskFilter struct {
	Status    string
	ProjectID string
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	Update(ctx context.Context, e *domain.TimeEntry) error
	Delete(ctx context.Context, id string) error

	// FindOpen returns the single running entry, or ErrNotFound.
	FindOpen(ctx context.Context) (*domain.TimeEntry, error)
	// FindOpenDetail is FindOpen joined with task/project/client identity.
	FindOpenDetail(ctx context.Context) (*EntryDetail, error)
	// ListForRange returns detail rows whose start instant falls in [from, to),
	// ordered by start time.
	ListForRange(ctx context.Context, from, to time.Time) ([]EntryDetail, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, f TaskFilter) ([]*domain.Task, error)
	ListDetail(ctx context.Context, f TaskFilter) ([]TaskDetail, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}
