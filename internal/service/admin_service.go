package service

import (
	"context"

	"personal_diary/internal/models"
	"personal_diary/internal/repository"
)

// AdminService is the privileged directory: listing registered users and
// resolving impersonation targets. It never reads or writes entries; an admin
// who wants a user's diary has to impersonate first.
type AdminService struct {
	users         repository.Users
	adminUsername string
}

func NewAdminService(users repository.Users, adminUsername string) *AdminService {
	return &AdminService{users: users, adminUsername: adminUsername}
}

// ListUsers returns every registered user except the admin itself, with
// entry/photo counts, most recently joined first.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.UserInfo, error) {
	return s.users.ListWithStats(ctx, s.adminUsername)
}

// Impersonate resolves the target user for a session identity swap.
// ErrNotFound when the id does not exist.
func (s *AdminService) Impersonate(ctx context.Context, targetID int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
