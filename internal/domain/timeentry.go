package domain

import "time"

// TimeEntry is a single tracked interval against a task. A nil EndTime means
// the entry is the currently running timer; at most one such entry exists.
// Timestamps are UTC instants. DurationSeconds is only meaningful once
// EndTime is set and always equals the derivation over the endpoints.
type TimeEntry struct {
	ID             string
	TaskID         string
	TaskExternalID string

	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Running reports whether the entry is the open (un-stopped) timer.
func (e *TimeEntry) Running() bool {
	return e.EndTime == nil
}

// Close stops the entry at the given instant and derives its duration.
// Closing before the start time is rejected; a closed entry stays closed.
func (e *TimeEntry) Close(now time.Time) error {
	secs, err := DurationSeconds(e.StartTime, now)
	if err != nil {
		return err
	}
	end := now
	e.EndTime = &end
	e.DurationSeconds = secs
	return nil
}

// SetInterval replaces both endpoints and re-derives the stored duration.
func (e *TimeEntry) SetInterval(start, end time.Time) error {
	secs, err := DurationSeconds(start, end)
	if err != nil {
		return err
	}
	endCopy := end
	e.StartTime = start
	e.EndTime = &endCopy
	e.DurationSeconds = secs
	return nil
}

// Shift moves both endpoints by the same delta, preserving duration exactly.
// Shifting an open entry only moves its start.
func (e *TimeEntry) Shift(delta time.Duration) {
	e.StartTime = e.StartTime.Add(delta)
	if e.EndTime != nil {
		end := e.EndTime.Add(delta)
		e.EndTime = &end
	}
}
