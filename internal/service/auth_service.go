package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"personal_diary/internal/models"
	"personal_diary/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 4

// Domain errors for auth flows.
var (
	ErrMissingFields      = errors.New("username and password required")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
)

// AuthService handles signup and credential verification.
type AuthService struct {
	users repository.Users
}

func NewAuthService(users repository.Users) *AuthService {
	return &AuthService{users: users}
}

// SignUp validates the submitted credentials, hashes the password and creates
// the user. The username is trimmed before any lookup or insert.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return 0, ErrPasswordTooShort
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return id, nil
}

// Login verifies the credentials and returns the user. Unknown usernames and
// wrong passwords both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if !verifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// EnsureAdmin seeds the reserved admin account at startup if it is missing.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u != nil {
		return nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := s.users.Create(ctx, username, hash); err != nil {
		// Lost a race with another boot; the account exists either way.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil
		}
		return err
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword never errors out: malformed hashes simply do not match.
func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
