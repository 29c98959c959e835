package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/garnizeh/placement/pkg/models"
)

func scanJob(scan func(dest ...any) error) (*models.Job, error) {
	var j models.Job
	var typ string
	var resp, reqs sql.NullString
	if err := scan(&j.ID, &j.Title, &j.Company, &j.Logo, &j.Location, &j.Salary, &j.Description, &resp, &reqs, &typ); err != nil {
		return nil, err
	}
	j.Type = models.EmploymentType(typ)
	if resp.Valid && resp.String != "" {
		if err := json.Unmarshal([]byte(resp.String), &j.Responsibilities); err != nil {
			return nil, fmt.Errorf("decode responsibilities for job %d: %w", j.ID, err)
		}
	}
	if reqs.Valid && reqs.String != "" {
		if err := json.Unmarshal([]byte(reqs.String), &j.Requirements); err != nil {
			return nil, fmt.Errorf("decode requirements for job %d: %w", j.ID, err)
		}
	}
	return &j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, company, logo, location, salary, description, responsibilities, requirements, type FROM jobs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, company, logo, location, salary, description, responsibilities, requirements, type FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}
