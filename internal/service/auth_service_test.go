package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"personal_diary/internal/models"
	"personal_diary/internal/repository"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)
	GetByIDFn       func(id int) (*models.User, error)
	ListFn          func(exclude string) ([]models.UserInfo, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockUserRepo) Create(_ context.Context, username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func (m *mockUserRepo) ListWithStats(_ context.Context, exclude string) ([]models.UserInfo, error) {
	return m.ListFn(exclude)
}

func TestAuthService_SignUp_HashesAndTrims(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 42, nil
		},
	}
	svc := NewAuthService(mock)

	id, err := svc.SignUp(context.Background(), "  alice  ", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.username != "alice" {
		t.Errorf("expected trimmed username 'alice', got %q", call.username)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if !verifyPassword(call.hash, "s3cr3t") {
		t.Errorf("stored hash does not verify with original password")
	}
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string) (int, error) {
			t.Fatal("Create should not be called on validation failure")
			return 0, nil
		},
	}
	svc := NewAuthService(mock)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"empty username", "", "longpass", ErrMissingFields},
		{"whitespace username", "   ", "longpass", ErrMissingFields},
		{"empty password", "alice", "", ErrMissingFields},
		{"short password", "alice", "abc", ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_SignUp_DuplicateUsername(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 0, repository.ErrDuplicateUsername
		},
	}
	svc := NewAuthService(mock)

	_, err := svc.SignUp(context.Background(), "alice", "s3cr3t")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := hashPassword("s3cr3t")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	alice := &models.User{ID: 7, Username: "alice", PasswordHash: hash, CreatedAt: time.Now()}

	mock := &mockUserRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(mock)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(context.Background(), "alice", "s3cr3t")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID != 7 {
			t.Fatalf("expected user id 7, got %d", u.ID)
		}
	})

	t.Run("username trimmed before lookup", func(t *testing.T) {
		if _, err := svc.Login(context.Background(), "  alice ", "s3cr3t"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := mock.getCalls[len(mock.getCalls)-1]; got != "alice" {
			t.Fatalf("expected trimmed lookup, got %q", got)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user indistinguishable from wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost", "s3cr3t")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("creates admin when missing", func(t *testing.T) {
		mock := &mockUserRepo{
			GetByUsernameFn: func(username string) (*models.User, error) { return nil, nil },
			CreateFn:        func(username, hash string) (int, error) { return 1, nil },
		}
		svc := NewAuthService(mock)

		if err := svc.EnsureAdmin(context.Background(), "admin", "admin123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(mock.createCalls) != 1 || mock.createCalls[0].username != "admin" {
			t.Fatalf("expected admin to be created, calls: %+v", mock.createCalls)
		}
		if !verifyPassword(mock.createCalls[0].hash, "admin123") {
			t.Fatal("seeded admin hash does not verify")
		}
	})

	t.Run("no-op when admin exists", func(t *testing.T) {
		mock := &mockUserRepo{
			GetByUsernameFn: func(username string) (*models.User, error) {
				return &models.User{ID: 1, Username: "admin"}, nil
			},
			CreateFn: func(username, hash string) (int, error) {
				t.Fatal("Create should not be called when admin exists")
				return 0, nil
			},
		}
		svc := NewAuthService(mock)

		if err := svc.EnsureAdmin(context.Background(), "admin", "admin123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
