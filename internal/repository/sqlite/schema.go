package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/garnizeh/placement/internal/seed"
)

var schemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		role TEXT NOT NULL,
		email TEXT NOT NULL,
		name TEXT NOT NULL,
		department TEXT,
		password_hash TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		logo TEXT,
		location TEXT,
		salary TEXT,
		description TEXT,
		responsibilities TEXT,
		requirements TEXT,
		type TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id INTEGER NOT NULL,
		student_id INTEGER NOT NULL,
		resume_id TEXT NOT NULL,
		cover_letter TEXT,
		submitted_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		size INTEGER NOT NULL,
		content BLOB NOT NULL
	);`,
}

// Bootstrap creates the portal tables. AUTOINCREMENT on applications is the
// monotonic ledger counter: sqlite never reuses an id, so ascending id order
// is submission order.
func (r *SQLiteRepo) Bootstrap(ctx context.Context) error {
	for _, stmt := range schemaStmts {
		if _, err := r.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Seed inserts the static users and jobs. Called once at startup; nothing
// writes to these tables afterwards.
func (r *SQLiteRepo) Seed(ctx context.Context, data *seed.Data) error {
	if data == nil {
		return fmt.Errorf("seed data is nil")
	}

	for _, u := range data.Users {
		dept := any(nil)
		if u.Department != "" {
			dept = u.Department
		}
		_, err := r.conn.Exec(ctx,
			`INSERT INTO users (id, role, email, name, department, password_hash) VALUES (?, ?, ?, ?, ?, ?)`,
			u.ID, string(u.Role), u.Email, u.Name, dept, u.PasswordHash)
		if err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}

	for _, j := range data.Jobs {
		resp, err := json.Marshal(j.Responsibilities)
		if err != nil {
			return fmt.Errorf("seed job %d: %w", j.ID, err)
		}
		reqs, err := json.Marshal(j.Requirements)
		if err != nil {
			return fmt.Errorf("seed job %d: %w", j.ID, err)
		}
		_, err = r.conn.Exec(ctx,
			`INSERT INTO jobs (id, title, company, logo, location, salary, description, responsibilities, requirements, type) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			j.ID, j.Title, j.Company, j.Logo, j.Location, j.Salary, j.Description, string(resp), string(reqs), string(j.Type))
		if err != nil {
			return fmt.Errorf("seed job %d: %w", j.ID, err)
		}
	}

	return nil
}
