package service

import (
	"context"
	"mime/multipart"
	"time"

	"personal_diary/internal/models"
	"personal_diary/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

// Sessions issues and resolves the signed session tokens carried in cookies.
type Sessions interface {
	Issue(user *models.User) (string, error)
	Impersonated(user *models.User) (string, error)
	Parse(token string) Identity
	TTL() time.Duration
}

// Entries exposes the diary entry lifecycle. Every operation that takes a
// requesterID enforces ownership; a mismatch is indistinguishable from the
// entry not existing.
type Entries interface {
	Create(ctx context.Context, ownerID int, date, content string, files []*multipart.FileHeader) (entryID, savedPhotos int, err error)
	Get(ctx context.Context, entryID, requesterID int) (*models.Entry, error)
	List(ctx context.Context, ownerID int) ([]models.EntryPreview, error)
	Update(ctx context.Context, entryID, requesterID int, date, content string, files []*multipart.FileHeader) (savedPhotos int, err error)
	Delete(ctx context.Context, entryID, requesterID int) error
}

// AdminDirectory is the admin-only read surface plus impersonation lookup.
type AdminDirectory interface {
	ListUsers(ctx context.Context) ([]models.UserInfo, error)
	Impersonate(ctx context.Context, targetID int) (*models.User, error)
}

// PhotoStore is the storage collaborator entries persist uploads through.
type PhotoStore interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type Service struct {
	Authorization
	Sessions
	Entries
	AdminDirectory
}

// Config carries the knobs services need beyond their repositories.
type Config struct {
	SigningKey    string
	SessionTTL    time.Duration
	AdminUsername string
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, photos PhotoStore, cfg Config) *Service {
	return &Service{
		Authorization:  NewAuthService(repos.Users),
		Sessions:       NewSessionService(cfg.SigningKey, cfg.SessionTTL, cfg.AdminUsername),
		Entries:        NewEntryService(repos.Entries, photos),
		AdminDirectory: NewAdminService(repos.Users, cfg.AdminUsername),
	}
}
