package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lbarrett/tempo/internal/db"
	"github.com/lbarrett/tempo/internal/domain"
)

// timeEntryColumns is the canonical SELECT column list for time_entries.
const timeEntryColumns = `id, task_id, task_external_id, start_time, end_time,
		duration_seconds, created_at, updated_at`

// entryDetailColumns joins entries with task, project and client identity for
// timeline and active-timer views.
const entryDetailColumns = `te.id, te.task_id, te.task_external_id, te.start_time,
		te.end_time, te.duration_seconds, te.created_at, te.updated_at,
		t.name, t.billable,
		p.id, p.external_id, p.name, p.color, p.icon_type, p.icon_value, p.hourly_rate,
		c.id, c.name`

const entryDetailJoins = `
	FROM time_entries te
	JOIN tasks t ON te.task_id = t.id
	LEFT JOIN projects p ON t.project_id = p.id
	LEFT JOIN clients c ON p.client_id = c.id`

// SQLiteTimeEntryRepo implements TimeEntryRepo over a DBTX, so the same type
// serves both direct reads and transaction-scoped writes.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

func NewSQLiteTimeEntryRepo(dbtx db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: dbtx}
}

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.TaskID,
		e.TaskExternalID,
		formatTime(e.StartTime),
		nullableTimeToValue(e.EndTime),
		durationValue(e),
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

// Update replaces the entry's interval and derived duration. The duration
// bind value comes from the entity, which derives it from the endpoints.
func (r *SQLiteTimeEntryRepo) Update(ctx context.Context, e *domain.TimeEntry) error {
	query := `UPDATE time_entries
		SET start_time = ?, end_time = ?, duration_seconds = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		formatTime(e.StartTime),
		nullableTimeToValue(e.EndTime),
		durationValue(e),
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("time entry: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) FindOpen(ctx context.Context) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE end_time IS NULL
		ORDER BY start_time DESC LIMIT 1`
	return r.scanEntry(r.db.QueryRowContext(ctx, query))
}

func (r *SQLiteTimeEntryRepo) FindOpenDetail(ctx context.Context) (*EntryDetail, error) {
	query := `SELECT ` + entryDetailColumns + entryDetailJoins + `
		WHERE te.end_time IS NULL
		ORDER BY te.start_time DESC LIMIT 1`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying open entry detail: %w", err)
	}
	defer rows.Close()

	details, err := r.scanDetails(rows)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("time entry: %w", ErrNotFound)
	}
	return &details[0], nil
}

func (r *SQLiteTimeEntryRepo) ListForRange(ctx context.Context, from, to time.Time) ([]EntryDetail, error) {
	query := `SELECT ` + entryDetailColumns + entryDetailJoins + `
		WHERE te.start_time >= ? AND te.start_time < ?
		ORDER BY te.start_time`
	rows, err := r.db.QueryContext(ctx, query, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()
	return r.scanDetails(rows)
}

// durationValue binds NULL for running entries; a stored duration is only
// meaningful alongside a set end time.
func durationValue(e *domain.TimeEntry) any {
	if e.EndTime == nil {
		return nil
	}
	return e.DurationSeconds
}

func (r *SQLiteTimeEntryRepo) scanEntry(row *sql.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var startStr, createdStr, updatedStr string
	var endStr sql.NullString
	var duration sql.NullInt64

	err := row.Scan(
		&e.ID, &e.TaskID, &e.TaskExternalID, &startStr, &endStr, &duration,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}

	if err := populateEntry(&e, startStr, endStr, duration, createdStr, updatedStr); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteTimeEntryRepo) scanDetails(rows *sql.Rows) ([]EntryDetail, error) {
	var details []EntryDetail
	for rows.Next() {
		var d EntryDetail
		var startStr, createdStr, updatedStr string
		var endStr sql.NullString
		var duration sql.NullInt64
		var billable int
		var projID, projExt, projName, projColor, iconType, iconValue sql.NullString
		var hourlyRate sql.NullFloat64
		var clientID, clientName sql.NullString

		err := rows.Scan(
			&d.Entry.ID, &d.Entry.TaskID, &d.Entry.TaskExternalID, &startStr, &endStr,
			&duration, &createdStr, &updatedStr,
			&d.TaskName, &billable,
			&projID, &projExt, &projName, &projColor, &iconType, &iconValue, &hourlyRate,
			&clientID, &clientName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning entry detail row: %w", err)
		}

		if err := populateEntry(&d.Entry, startStr, endStr, duration, createdStr, updatedStr); err != nil {
			return nil, err
		}
		d.Billable = intToBool(billable)
		d.ProjectID = projID.String
		d.ProjectExternalID = projExt.String
		d.ProjectName = projName.String
		d.ProjectColor = projColor.String
		d.ProjectIconType = iconType.String
		d.ProjectIconValue = iconValue.String
		d.HourlyRate = hourlyRate.Float64
		d.ClientID = clientID.String
		d.ClientName = clientName.String

		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry details: %w", err)
	}
	return details, nil
}

func populateEntry(e *domain.TimeEntry, startStr string, endStr sql.NullString, duration sql.NullInt64, createdStr, updatedStr string) error {
	var err error
	if e.StartTime, err = parseTime(startStr); err != nil {
		return fmt.Errorf("parsing start_time: %w", err)
	}
	e.EndTime = parseNullableTime(endStr)
	if duration.Valid {
		e.DurationSeconds = int(duration.Int64)
	}
	if e.CreatedAt, err = parseTime(createdStr); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
