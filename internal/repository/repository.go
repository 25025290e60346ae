package repository

import (
	"context"
	"database/sql"
	"errors"

	"personal_diary/internal/models"
	"personal_diary/internal/repository/db"
)

// ErrDuplicateUsername is returned by Users.Create when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

type Users interface {
	Create(ctx context.Context, username, passwordHash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	ListWithStats(ctx context.Context, excludeUsername string) ([]models.UserInfo, error)
}

type Entries interface {
	CreateWithPhotos(ctx context.Context, e models.Entry, photoNames []string) (int, error)
	GetOwned(ctx context.Context, entryID, ownerID int) (*models.Entry, error)
	ListPreviews(ctx context.Context, ownerID, previewLen int) ([]models.EntryPreview, error)
	UpdateWithPhotos(ctx context.Context, entryID, ownerID int, date, content string, photoNames []string) (bool, error)
	DeleteOwned(ctx context.Context, entryID, ownerID int) error
}

type Repository struct {
	Users   Users
	Entries Entries
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(sqlDB),
		Entries: NewEntryRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
