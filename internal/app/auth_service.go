package app

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/placement/pkg/models"
	"github.com/garnizeh/placement/pkg/repository"
)

type AuthService struct {
	users repository.UserRepo
}

func NewAuthService(users repository.UserRepo) *AuthService {
	return &AuthService{users: users}
}

// Authenticate matches role, email and password against the identity store.
// Exactly one row may match role and email; zero or several rows, an unknown
// role tag or a failed bcrypt check all return ErrInvalidCredentials. The
// email gets surrounding whitespace trimmed; nothing else is normalized.
func (s *AuthService) Authenticate(ctx context.Context, role models.Role, email, password string) (models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidCredentials
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	creds, err := s.users.FindCredentials(ctx, role, email)
	if err != nil {
		return nil, err
	}
	if len(creds) != 1 {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(creds[0].PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return creds[0].User, nil
}
