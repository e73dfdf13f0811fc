package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lbarrett/tempo/internal/db"
	"github.com/lbarrett/tempo/internal/domain"
)

const projectColumns = `id, external_id, name, client_id, client_external_id,
		status, color, icon_type, icon_value, hourly_rate, budgeted_hours,
		created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo over a DBTX.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(dbtx db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: dbtx}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		nullableStringToValue(p.ExternalID),
		p.Name,
		nullableStringToValue(p.ClientID),
		p.ClientExternalID,
		p.Status,
		p.Color,
		p.IconType,
		p.IconValue,
		p.HourlyRate,
		p.BudgetedHours,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY name COLLATE NOCASE`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects
		SET external_id = ?, name = ?, client_id = ?, client_external_id = ?,
			status = ?, color = ?, icon_type = ?, icon_value = ?,
			hourly_rate = ?, budgeted_hours = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(p.ExternalID),
		p.Name,
		nullableStringToValue(p.ClientID),
		p.ClientExternalID,
		p.Status,
		p.Color,
		p.IconType,
		p.IconValue,
		p.HourlyRate,
		p.BudgetedHours,
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project: %w", ErrNotFound)
	}
	return nil
}

func scanProject(scan func(...any) error) (*domain.Project, error) {
	var p domain.Project
	var externalID, clientID sql.NullString
	var createdStr, updatedStr string

	err := scan(
		&p.ID, &externalID, &p.Name, &clientID, &p.ClientExternalID,
		&p.Status, &p.Color, &p.IconType, &p.IconValue, &p.HourlyRate, &p.BudgetedHours,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.ExternalID = externalID.String
	p.ClientID = clientID.String
	if p.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
