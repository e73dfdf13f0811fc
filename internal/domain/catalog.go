package domain

import "time"

// Task, Project and Client are read-mostly mirrors of the external workspace,
// augmented with locally-owned billing and display fields. The sync that
// populates them is an external collaborator; entries reference tasks both by
// local id and by external id so a re-sync cannot orphan recorded time.

type Task struct {
	ID                string
	ExternalID        string
	Name              string
	ProjectID         string
	ProjectExternalID string
	Status            string
	Assignee          string
	Billable          bool
	Billed            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Project struct {
	ID               string
	ExternalID       string
	Name             string
	ClientID         string
	ClientExternalID string
	Status           string
	Color            string
	IconType         string
	IconValue        string
	HourlyRate       float64
	BudgetedHours    float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Client struct {
	ID         string
	ExternalID string
	Name       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
