package api

import (
	"errors"
	"strings"
	"time"

	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/repository"
)

// StartTimerRequest is the payload for POST /time-entries/start.
type StartTimerRequest struct {
	TaskID string `json:"taskId"`
}

// Validate ensures request correctness.
func (r StartTimerRequest) Validate() error {
	if strings.TrimSpace(r.TaskID) == "" {
		return errors.New("taskId is required")
	}
	return nil
}

// StartTimerResponse describes the response body for start.
type StartTimerResponse struct {
	Message        string     `json:"message"`
	TimeEntryID    string     `json:"timeEntryId"`
	TaskID         string     `json:"taskId"`
	TaskExternalID string     `json:"taskExternalId"`
	StartTime      time.Time  `json:"startTime"`
	Resumed        bool       `json:"resumed,omitempty"`
	StoppedEntry   *EntryView `json:"stoppedEntry,omitempty"`
}

// StopTimerResponse describes the response body for stop.
type StopTimerResponse struct {
	Message     string    `json:"message"`
	TimeEntryID string    `json:"timeEntryId"`
	EndTime     time.Time `json:"endTime"`
	Duration    int       `json:"duration"`
}

// CreateEntryRequest is the payload for POST /time-entries. Either EndTime
// or Duration must be present; the missing one is derived.
type CreateEntryRequest struct {
	TaskID    string     `json:"taskId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  *int       `json:"duration"`
}

// Validate ensures request correctness.
func (r CreateEntryRequest) Validate() error {
	if strings.TrimSpace(r.TaskID) == "" {
		return errors.New("taskId is required")
	}
	if r.StartTime.IsZero() {
		return errors.New("startTime is required")
	}
	if r.EndTime == nil && r.Duration == nil {
		return errors.New("either endTime or duration (in seconds) is required")
	}
	return nil
}

// UpdateEntryRequest is the payload for PUT /time-entries/{id}. Duration is
// accepted but ignored: it is always recomputed from the endpoints.
type UpdateEntryRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  *int      `json:"duration"`
}

// Validate ensures request correctness.
func (r UpdateEntryRequest) Validate() error {
	if r.StartTime.IsZero() {
		return errors.New("startTime is required")
	}
	if r.EndTime.IsZero() {
		return errors.New("endTime is required")
	}
	return nil
}

// DeleteEntryResponse confirms a deletion.
type DeleteEntryResponse struct {
	Message     string `json:"message"`
	TimeEntryID string `json:"timeEntryId"`
}

// EntryView is a time entry as the timeline consumes it: the interval plus
// the joined task/project/client display metadata.
type EntryView struct {
	TimeEntryID       string     `json:"timeEntryId"`
	TaskID            string     `json:"taskId"`
	TaskExternalID    string     `json:"taskExternalId"`
	TaskName          string     `json:"taskName,omitempty"`
	ProjectID         string     `json:"projectId,omitempty"`
	ProjectExternalID string     `json:"projectExternalId,omitempty"`
	ProjectName       string     `json:"projectName,omitempty"`
	ProjectColor      string     `json:"projectColor,omitempty"`
	HourlyRate        float64    `json:"hourlyRate,omitempty"`
	Billable          bool       `json:"billable,omitempty"`
	ClientID          string     `json:"clientId,omitempty"`
	ClientName        string     `json:"clientName,omitempty"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	Duration          int        `json:"duration"`
}

// TaskView is a task row for GET /tasks, joined with project/client names
// and per-task tracked totals.
type TaskView struct {
	TaskID      string     `json:"taskId"`
	ExternalID  string     `json:"externalId"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Billable    bool       `json:"billable"`
	ProjectID   string     `json:"projectId,omitempty"`
	ProjectName string     `json:"projectName,omitempty"`
	ClientID    string     `json:"clientId,omitempty"`
	ClientName  string     `json:"clientName,omitempty"`
	TotalHours  float64    `json:"totalHours"`
	ActiveStart *time.Time `json:"activeStart,omitempty"`
}

func entryToView(e *domain.TimeEntry) EntryView {
	return EntryView{
		TimeEntryID:    e.ID,
		TaskID:         e.TaskID,
		TaskExternalID: e.TaskExternalID,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		Duration:       e.DurationSeconds,
	}
}

func detailToView(d repository.EntryDetail) EntryView {
	v := entryToView(&d.Entry)
	v.TaskName = d.TaskName
	v.ProjectID = d.ProjectID
	v.ProjectExternalID = d.ProjectExternalID
	v.ProjectName = d.ProjectName
	v.ProjectColor = d.ProjectColor
	v.HourlyRate = d.HourlyRate
	v.Billable = d.Billable
	v.ClientID = d.ClientID
	v.ClientName = d.ClientName
	return v
}

func taskDetailToView(d repository.TaskDetail) TaskView {
	return TaskView{
		TaskID:      d.Task.ID,
		ExternalID:  d.Task.ExternalID,
		Name:        d.Task.Name,
		Status:      d.Task.Status,
		Billable:    d.Task.Billable,
		ProjectID:   d.Task.ProjectID,
		ProjectName: d.ProjectName,
		ClientID:    d.ClientID,
		ClientName:  d.ClientName,
		TotalHours:  d.TotalHours,
		ActiveStart: d.ActiveStart,
	}
}
