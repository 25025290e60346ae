package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"personal_diary/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, password_hash, created_at FROM users WHERE id = ?`

	// Aggregate counts per user: entries joined once, photos through entries.
	// COUNT(DISTINCT e.id) keeps the photo join from inflating the entry count.
	listUsersWithStatsSQL = `
		SELECT u.id, u.username,
		       COUNT(DISTINCT e.id) AS entry_count,
		       COUNT(p.id) AS photo_count,
		       u.created_at
		FROM users u
		LEFT JOIN entries e ON e.user_id = u.id
		LEFT JOIN photos p ON p.entry_id = e.id
		WHERE u.username != ?
		GROUP BY u.id, u.username, u.created_at
		ORDER BY u.created_at DESC, u.id DESC
	`
)

const sqliteTimeFormat = "2006-01-02 15:04:05"

// Create inserts a new user and returns its ID.
// A UNIQUE violation on username is reported as ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (int, error) {
	now := time.Now().UTC().Format(sqliteTimeFormat)
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, passwordHash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByIDSQL, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return &u, nil
}

// ListWithStats returns every user except excludeUsername together with
// entry/photo counts, most recently joined first.
func (r *UserRepository) ListWithStats(ctx context.Context, excludeUsername string) ([]models.UserInfo, error) {
	rows, err := r.db.QueryContext(ctx, listUsersWithStatsSQL, excludeUsername)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]models.UserInfo, 0, 16)
	for rows.Next() {
		var info models.UserInfo
		if err := rows.Scan(&info.ID, &info.Username, &info.EntryCount, &info.PhotoCount, &info.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return out, nil
}

// isUniqueViolation matches the sqlite UNIQUE constraint error. The modernc
// driver surfaces it only through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
