package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/lbarrett/tempo/internal/domain"
)

// Client options

type ClientOption func(*domain.Client)

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:         uuid.New().String(),
		ExternalID: "ext-" + uuid.New().String(),
		Name:       name,
		Status:     "Active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options

type ProjectOption func(*domain.Project)

func WithClient(clientID string) ProjectOption {
	return func(p *domain.Project) {
		p.ClientID = clientID
	}
}

func WithHourlyRate(rate float64) ProjectOption {
	return func(p *domain.Project) {
		p.HourlyRate = rate
	}
}

func WithColor(color string) ProjectOption {
	return func(p *domain.Project) {
		p.Color = color
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		ExternalID: "ext-" + uuid.New().String(),
		Name:       name,
		Status:     "In Progress",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options

type TaskOption func(*domain.Task)

func WithProject(projectID string) TaskOption {
	return func(t *domain.Task) {
		t.ProjectID = projectID
	}
}

func WithBillable(b bool) TaskOption {
	return func(t *domain.Task) {
		t.Billable = b
	}
}

func NewTestTask(name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	task := &domain.Task{
		ID:         uuid.New().String(),
		ExternalID: "ext-" + uuid.New().String(),
		Name:       name,
		Status:     "In Progress",
		Billable:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// Time entry options

type EntryOption func(*domain.TimeEntry)

func WithInterval(start, end time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		// Fixtures never construct inverted intervals.
		if err := e.SetInterval(start.UTC(), end.UTC()); err != nil {
			panic(err)
		}
	}
}

func WithOpenSince(start time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartTime = start.UTC()
		e.EndTime = nil
		e.DurationSeconds = 0
	}
}

func NewTestEntry(taskID string, opts ...EntryOption) *domain.TimeEntry {
	now := time.Now().UTC()
	e := &domain.TimeEntry{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		StartTime: now.Add(-time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	end := now
	e.EndTime = &end
	e.DurationSeconds = 3600
	for _, opt := range opts {
		opt(e)
	}
	return e
}
