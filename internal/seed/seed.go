// Package seed loads the static users and jobs the portal runs on. The seed
// file is the only external data boundary the system has, so it gets schema
// validation before anything is inserted into the store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/qri-io/jsonschema"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/placement/pkg/models"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed seed.json
var defaultSeed []byte

// User is the seed-file shape of an identity row. Demo seeds carry a plain
// password that gets bcrypt-hashed at load time; real deployments supply
// password_hash and never ship a plaintext credential.
type User struct {
	ID           int64       `json:"id"`
	Role         models.Role `json:"role"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Department   string      `json:"department,omitempty"`
	Password     string      `json:"password,omitempty"`
	PasswordHash string      `json:"password_hash,omitempty"`
}

type Data struct {
	Users []User       `json:"users"`
	Jobs  []models.Job `json:"jobs"`
}

// Load reads and validates the seed file at path, or the embedded default
// seed when path is empty. Plaintext demo passwords are hashed here so the
// rest of the system only ever sees bcrypt hashes.
func Load(ctx context.Context, path string) (*Data, error) {
	raw := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}

	if err := Validate(ctx, raw); err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for i := range data.Users {
		u := &data.Users[i]
		u.Email = strings.TrimSpace(u.Email)
		if u.PasswordHash != "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password for %s: %w", u.Email, err)
		}
		u.PasswordHash = string(hash)
		u.Password = ""
	}

	return &data, nil
}

// Validate checks raw seed JSON against the embedded schema plus the unique-id
// rules the schema cannot express.
func Validate(ctx context.Context, raw []byte) error {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaJSON, rs); err != nil {
		return fmt.Errorf("compile seed schema: %w", err)
	}

	keyErrs, err := rs.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("validate seed: %w", err)
	}
	if len(keyErrs) > 0 {
		msgs := make([]string, 0, len(keyErrs))
		for _, ke := range keyErrs {
			msgs = append(msgs, ke.Error())
		}
		return fmt.Errorf("seed does not match schema: %s", strings.Join(msgs, "; "))
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	seenUsers := make(map[int64]bool, len(data.Users))
	for _, u := range data.Users {
		if seenUsers[u.ID] {
			return fmt.Errorf("duplicate user id %d in seed", u.ID)
		}
		seenUsers[u.ID] = true
		if u.Password == "" && u.PasswordHash == "" {
			return fmt.Errorf("user %d has neither password nor password_hash", u.ID)
		}
	}

	seenJobs := make(map[int64]bool, len(data.Jobs))
	for _, j := range data.Jobs {
		if seenJobs[j.ID] {
			return fmt.Errorf("duplicate job id %d in seed", j.ID)
		}
		seenJobs[j.ID] = true
	}

	return nil
}
