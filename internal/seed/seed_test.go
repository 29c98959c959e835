package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/placement/internal/seed"
	"github.com/garnizeh/placement/pkg/models"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	data, err := seed.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Users) == 0 || len(data.Jobs) == 0 {
		t.Fatalf("embedded seed is empty: %d users, %d jobs", len(data.Users), len(data.Jobs))
	}

	var students, staff int
	for _, u := range data.Users {
		if !u.Role.Valid() {
			t.Fatalf("user %d has invalid role %q", u.ID, u.Role)
		}
		if u.Role == models.RoleStudent {
			students++
			if u.Department == "" {
				t.Fatalf("student %d missing department", u.ID)
			}
		} else {
			staff++
		}
		if u.Password != "" {
			t.Fatalf("user %d still carries a plaintext password after load", u.ID)
		}
		if u.PasswordHash == "" {
			t.Fatalf("user %d has no password hash after load", u.ID)
		}
	}
	if students == 0 || staff == 0 {
		t.Fatalf("expected both students and staff in the default seed")
	}
}

func TestLoad_HashesPlaintextPasswords(t *testing.T) {
	raw := `{
		"users": [
			{"id": 1, "role": "student", "email": "a@x.edu", "name": "A", "department": "CS", "password": "hunter2"}
		],
		"jobs": [
			{"id": 10, "title": "T", "company": "C", "location": "L", "type": "Full-time"}
		]
	}`
	path := writeSeed(t, raw)

	data, err := seed.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	u := data.Users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("hash does not verify against original password: %v", err)
	}
}

func TestValidate_RejectsBadSeeds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "unknown role",
			raw:  `{"users":[{"id":1,"role":"dean","email":"a@x.edu","name":"A","password":"p"}],"jobs":[]}`,
		},
		{
			name: "student without department",
			raw:  `{"users":[{"id":1,"role":"student","email":"a@x.edu","name":"A","password":"p"}],"jobs":[]}`,
		},
		{
			name: "duplicate user id",
			raw: `{"users":[
				{"id":1,"role":"teacher","email":"a@x.edu","name":"A","password":"p"},
				{"id":1,"role":"pto","email":"b@x.edu","name":"B","password":"p"}
			],"jobs":[]}`,
		},
		{
			name: "duplicate job id",
			raw: `{"users":[{"id":1,"role":"teacher","email":"a@x.edu","name":"A","password":"p"}],
				"jobs":[
					{"id":10,"title":"T","company":"C","location":"L","type":"Full-time"},
					{"id":10,"title":"U","company":"D","location":"M","type":"Contract"}
				]}`,
		},
		{
			name: "bad employment type",
			raw: `{"users":[{"id":1,"role":"teacher","email":"a@x.edu","name":"A","password":"p"}],
				"jobs":[{"id":10,"title":"T","company":"C","location":"L","type":"Gig"}]}`,
		},
		{
			name: "no credential at all",
			raw:  `{"users":[{"id":1,"role":"teacher","email":"a@x.edu","name":"A"}],"jobs":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := seed.Validate(context.Background(), []byte(tt.raw)); err == nil {
				t.Fatalf("expected validation failure")
			}
		})
	}
}

func writeSeed(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}
