package sqlite

import (
	"context"
	"database/sql"

	"github.com/garnizeh/placement/pkg/models"
)

type userRow struct {
	id           int64
	role         string
	email        string
	name         string
	department   sql.NullString
	passwordHash string
}

// toUser maps a row onto the User union. The role tag decides the variant;
// the department column only ever matters for students.
func (ur userRow) toUser() models.User {
	if models.Role(ur.role) == models.RoleStudent {
		return models.Student{ID: ur.id, Email: ur.email, Name: ur.name, Department: ur.department.String}
	}
	return models.Staff{ID: ur.id, Email: ur.email, Name: ur.name, StaffRole: models.Role(ur.role)}
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, role, email, name, department, password_hash FROM users WHERE id = ?`, id)
	var ur userRow
	if err := row.Scan(&ur.id, &ur.role, &ur.email, &ur.name, &ur.department, &ur.passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return ur.toUser(), nil
}

func (r *SQLiteRepo) FindCredentials(ctx context.Context, role models.Role, email string) ([]models.Credential, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, role, email, name, department, password_hash FROM users WHERE role = ? AND email = ?`, string(role), email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Credential
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(&ur.id, &ur.role, &ur.email, &ur.name, &ur.department, &ur.passwordHash); err != nil {
			return nil, err
		}
		out = append(out, models.Credential{User: ur.toUser(), PasswordHash: ur.passwordHash})
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, email, name, department FROM users WHERE role = ? ORDER BY id`, string(models.RoleStudent))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Student
	for rows.Next() {
		var s models.Student
		var dept sql.NullString
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &dept); err != nil {
			return nil, err
		}
		s.Department = dept.String
		out = append(out, s)
	}

	return out, rows.Err()
}
