package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"personal_diary/internal/models"
)

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

var _ Entries = (*EntryRepository)(nil)

const (
	insertEntrySQL = `INSERT INTO entries (user_id, date, content, created_at) VALUES (?, ?, ?, ?)`
	insertPhotoSQL = `INSERT INTO photos (entry_id, filename, created_at) VALUES (?, ?, ?)`

	selectEntryOwnedSQL = `SELECT id, user_id, date, content, created_at FROM entries WHERE id = ? AND user_id = ?`
	selectPhotosSQL     = `SELECT id, entry_id, filename, created_at FROM photos WHERE entry_id = ? ORDER BY id`

	// date DESC then creation DESC; id breaks same-second ties in insertion order.
	listPreviewsSQL = `
		SELECT id, date, substr(COALESCE(content, ''), 1, ?) AS preview
		FROM entries
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC, id DESC
	`

	updateEntryOwnedSQL = `UPDATE entries SET date = ?, content = ? WHERE id = ? AND user_id = ?`

	// Explicit cascade: photos first, then the entry, inside one transaction.
	// The ownership predicate rides along so a foreign id touches nothing.
	deletePhotosOwnedSQL = `DELETE FROM photos WHERE entry_id IN (SELECT id FROM entries WHERE id = ? AND user_id = ?)`
	deleteEntryOwnedSQL  = `DELETE FROM entries WHERE id = ? AND user_id = ?`
)

// CreateWithPhotos inserts the entry and one photo row per stored filename in
// a single transaction and returns the new entry id.
func (r *EntryRepository) CreateWithPhotos(ctx context.Context, e models.Entry, photoNames []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create entry: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(sqliteTimeFormat)
	res, err := tx.ExecContext(ctx, insertEntrySQL, e.UserID, e.Date, e.Content, now)
	if err != nil {
		return 0, fmt.Errorf("insert entry for user %d: %w", e.UserID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get entry insert id: %w", err)
	}
	entryID := int(lastID)

	if err := insertPhotos(ctx, tx, entryID, photoNames, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create entry: %w", err)
	}
	return entryID, nil
}

// GetOwned fetches an entry with its photos, only if ownerID owns it.
// Returns (nil, nil) when the entry is missing or owned by someone else.
func (r *EntryRepository) GetOwned(ctx context.Context, entryID, ownerID int) (*models.Entry, error) {
	var e models.Entry
	err := r.db.QueryRowContext(ctx, selectEntryOwnedSQL, entryID, ownerID).
		Scan(&e.ID, &e.UserID, &e.Date, &e.Content, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select entry %d: %w", entryID, err)
	}

	rows, err := r.db.QueryContext(ctx, selectPhotosSQL, entryID)
	if err != nil {
		return nil, fmt.Errorf("select photos for entry %d: %w", entryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.EntryID, &p.Filename, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo row: %w", err)
		}
		e.Photos = append(e.Photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photo rows: %w", err)
	}
	return &e, nil
}

// ListPreviews returns the owner's entries newest first with a content snippet
// of at most previewLen characters.
func (r *EntryRepository) ListPreviews(ctx context.Context, ownerID, previewLen int) ([]models.EntryPreview, error) {
	rows, err := r.db.QueryContext(ctx, listPreviewsSQL, previewLen, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.EntryPreview, 0, 32)
	for rows.Next() {
		var p models.EntryPreview
		if err := rows.Scan(&p.ID, &p.Date, &p.Preview); err != nil {
			return nil, fmt.Errorf("scan entry preview: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry previews: %w", err)
	}
	return out, nil
}

// UpdateWithPhotos updates date/content in place and appends new photo rows,
// all in one transaction. Returns false (and no error) when ownerID does not
// own entryID, so the caller cannot tell missing from foreign.
func (r *EntryRepository) UpdateWithPhotos(ctx context.Context, entryID, ownerID int, date, content string, photoNames []string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin update entry: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, updateEntryOwnedSQL, date, content, entryID, ownerID)
	if err != nil {
		return false, fmt.Errorf("update entry %d: %w", entryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update entry %d rows affected: %w", entryID, err)
	}
	if affected == 0 {
		return false, nil
	}

	now := time.Now().UTC().Format(sqliteTimeFormat)
	if err := insertPhotos(ctx, tx, entryID, photoNames, now); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit update entry: %w", err)
	}
	return true, nil
}

// DeleteOwned removes the entry and its photos in one transaction. Deleting a
// missing or foreign id is a no-op.
func (r *EntryRepository) DeleteOwned(ctx context.Context, entryID, ownerID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete entry: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deletePhotosOwnedSQL, entryID, ownerID); err != nil {
		return fmt.Errorf("delete photos for entry %d: %w", entryID, err)
	}
	if _, err := tx.ExecContext(ctx, deleteEntryOwnedSQL, entryID, ownerID); err != nil {
		return fmt.Errorf("delete entry %d: %w", entryID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete entry: %w", err)
	}
	return nil
}

func insertPhotos(ctx context.Context, tx *sql.Tx, entryID int, photoNames []string, now string) error {
	for _, name := range photoNames {
		if _, err := tx.ExecContext(ctx, insertPhotoSQL, entryID, name, now); err != nil {
			return fmt.Errorf("insert photo %q for entry %d: %w", name, entryID, err)
		}
	}
	return nil
}
