package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/placement/pkg/models"
)

// CreateApplication appends to the ledger. The resume is written in the same
// transaction, so a reader never sees an application whose resume is missing.
func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application, resume *models.Resume) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}
	if resume == nil || len(resume.Content) == 0 {
		return 0, fmt.Errorf("application requires a resume")
	}

	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO resumes (id, file_name, size, content) VALUES (?, ?, ?, ?)`,
		resume.ID, resume.FileName, resume.Size, resume.Content); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("store resume: %w", err)
	}

	submitted := a.SubmittedAt
	if submitted == 0 {
		submitted = now()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO applications (job_id, student_id, resume_id, cover_letter, submitted_at) VALUES (?, ?, ?, ?, ?)`,
		a.JobID, a.StudentID, resume.ID, a.CoverLetter, submitted)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("store application: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	a.ID = id
	a.ResumeID = resume.ID
	a.SubmittedAt = submitted
	return id, nil
}

const applicationColumns = `id, job_id, student_id, resume_id, cover_letter, submitted_at`

func scanApplication(scan func(dest ...any) error) (*models.Application, error) {
	var a models.Application
	var cover sql.NullString
	if err := scan(&a.ID, &a.JobID, &a.StudentID, &a.ResumeID, &cover, &a.SubmittedAt); err != nil {
		return nil, err
	}
	a.CoverLetter = cover.String
	return &a, nil
}

func (r *SQLiteRepo) ListApplications(ctx context.Context) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = ? ORDER BY id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	a, err := scanApplication(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) CountApplications(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM applications`)
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}

	return n, nil
}

func (r *SQLiteRepo) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, file_name, size, content FROM resumes WHERE id = ?`, id)
	var res models.Resume
	if err := row.Scan(&res.ID, &res.FileName, &res.Size, &res.Content); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &res, nil
}
