package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lbarrett/tempo/internal/db"
	"github.com/lbarrett/tempo/internal/domain"
)

const taskColumns = `id, external_id, name, project_id, project_external_id,
		status, assignee, billable, billed, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo over a DBTX.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		nullableStringToValue(t.ExternalID),
		t.Name,
		nullableStringToValue(t.ProjectID),
		t.ProjectExternalID,
		t.Status,
		t.Assignee,
		boolToInt(t.Billable),
		boolToInt(t.Billed),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return r.scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTaskRepo) List(ctx context.Context, f TaskFilter) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	conditions, params := taskConditions(f, "")
	query += conditions + ` ORDER BY name COLLATE NOCASE`

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// ListDetail joins each task with project/client names, total completed hours
// and the start of its running entry, if any.
func (r *SQLiteTaskRepo) ListDetail(ctx context.Context, f TaskFilter) ([]TaskDetail, error) {
	query := `SELECT t.id, t.external_id, t.name, t.project_id, t.project_external_id,
			t.status, t.assignee, t.billable, t.billed, t.created_at, t.updated_at,
			p.name, c.id, c.name,
			COALESCE(SUM(te.duration_seconds), 0) / 3600.0,
			(SELECT te2.start_time FROM time_entries te2
				WHERE te2.task_id = t.id AND te2.end_time IS NULL LIMIT 1)
		FROM tasks t
		LEFT JOIN projects p ON t.project_id = p.id
		LEFT JOIN clients c ON p.client_id = c.id
		LEFT JOIN time_entries te ON te.task_id = t.id AND te.end_time IS NOT NULL`
	conditions, params := taskConditions(f, "t.")
	query += conditions + `
		GROUP BY t.id
		ORDER BY p.name COLLATE NOCASE, t.name COLLATE NOCASE`

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("listing task details: %w", err)
	}
	defer rows.Close()

	var details []TaskDetail
	for rows.Next() {
		var d TaskDetail
		var externalID, projectID, projectName, clientID, clientName, activeStart sql.NullString
		var billable, billed int
		var createdStr, updatedStr string

		err := rows.Scan(
			&d.Task.ID, &externalID, &d.Task.Name, &projectID, &d.Task.ProjectExternalID,
			&d.Task.Status, &d.Task.Assignee, &billable, &billed, &createdStr, &updatedStr,
			&projectName, &clientID, &clientName,
			&d.TotalHours,
			&activeStart,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task detail row: %w", err)
		}

		d.Task.ExternalID = externalID.String
		d.Task.ProjectID = projectID.String
		d.Task.Billable = intToBool(billable)
		d.Task.Billed = intToBool(billed)
		if d.Task.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if d.Task.UpdatedAt, err = parseTime(updatedStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		d.ProjectName = projectName.String
		d.ClientID = clientID.String
		d.ClientName = clientName.String
		d.ActiveStart = parseNullableTime(activeStart)

		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task details: %w", err)
	}
	return details, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks
		SET external_id = ?, name = ?, project_id = ?, project_external_id = ?,
			status = ?, assignee = ?, billable = ?, billed = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(t.ExternalID),
		t.Name,
		nullableStringToValue(t.ProjectID),
		t.ProjectExternalID,
		t.Status,
		t.Assignee,
		boolToInt(t.Billable),
		boolToInt(t.Billed),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

// taskConditions builds the WHERE clause shared by List and ListDetail.
// prefix qualifies columns for joined queries ("t.").
func taskConditions(f TaskFilter, prefix string) (string, []any) {
	var conds []string
	var params []any
	if f.Status != "" {
		conds = append(conds, prefix+"status = ?")
		params = append(params, f.Status)
	}
	if f.ProjectID != "" {
		conds = append(conds, prefix+"project_id = ?")
		params = append(params, f.ProjectID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	clause := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		clause += " AND " + c
	}
	return clause, params
}

func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var externalID, projectID sql.NullString
	var billable, billed int
	var createdStr, updatedStr string

	err := row.Scan(
		&t.ID, &externalID, &t.Name, &projectID, &t.ProjectExternalID,
		&t.Status, &t.Assignee, &billable, &billed, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return r.populateTask(&t, externalID, projectID, billable, billed, createdStr, updatedStr)
}

func (r *SQLiteTaskRepo) scanTaskRow(rows *sql.Rows) (*domain.Task, error) {
	var t domain.Task
	var externalID, projectID sql.NullString
	var billable, billed int
	var createdStr, updatedStr string

	err := rows.Scan(
		&t.ID, &externalID, &t.Name, &projectID, &t.ProjectExternalID,
		&t.Status, &t.Assignee, &billable, &billed, &createdStr, &updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning task row: %w", err)
	}
	return r.populateTask(&t, externalID, projectID, billable, billed, createdStr, updatedStr)
}

func (r *SQLiteTaskRepo) populateTask(t *domain.Task, externalID, projectID sql.NullString, billable, billed int, createdStr, updatedStr string) (*domain.Task, error) {
	t.ExternalID = externalID.String
	t.ProjectID = projectID.String
	t.Billable = intToBool(billable)
	t.Billed = intToBool(billed)

	var err error
	if t.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, nil
}
