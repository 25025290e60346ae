package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"personal_diary/internal/models"
	"personal_diary/internal/repository"
)

// previewLen is the listing snippet length, used on every listing surface.
const previewLen = 30

var ErrDateRequired = errors.New("entry date is required")

// EntryService implements the entry lifecycle on top of the entry repository
// and the photo storage collaborator.
type EntryService struct {
	entries repository.Entries
	photos  PhotoStore
}

func NewEntryService(entries repository.Entries, photos PhotoStore) *EntryService {
	return &EntryService{entries: entries, photos: photos}
}

// Create stores the non-empty uploads, then inserts the entry plus its photo
// rows in one transaction. If the insert fails the rows roll back together;
// bytes already written to storage stay behind (accepted inconsistency).
// Returns the new entry id and the number of photos saved.
func (s *EntryService) Create(ctx context.Context, ownerID int, date, content string, files []*multipart.FileHeader) (int, int, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, 0, ErrDateRequired
	}

	names, err := s.storeUploads(files)
	if err != nil {
		return 0, 0, err
	}

	entryID, err := s.entries.CreateWithPhotos(ctx, models.Entry{
		UserID:  ownerID,
		Date:    date,
		Content: content,
	}, names)
	if err != nil {
		return 0, 0, err
	}
	return entryID, len(names), nil
}

// Get returns the entry with its photos. Missing and non-owned entries are
// both ErrNotFound so callers cannot probe for existence.
func (s *EntryService) Get(ctx context.Context, entryID, requesterID int) (*models.Entry, error) {
	e, err := s.entries.GetOwned(ctx, entryID, requesterID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// List returns the owner's entries, newest first, with content previews.
func (s *EntryService) List(ctx context.Context, ownerID int) ([]models.EntryPreview, error) {
	return s.entries.ListPreviews(ctx, ownerID, previewLen)
}

// Update rewrites date/content and appends any new photos. Existing photos
// are never removed here. Ownership is enforced the same way as Get.
func (s *EntryService) Update(ctx context.Context, entryID, requesterID int, date, content string, files []*multipart.FileHeader) (int, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, ErrDateRequired
	}

	names, err := s.storeUploads(files)
	if err != nil {
		return 0, err
	}

	updated, err := s.entries.UpdateWithPhotos(ctx, entryID, requesterID, date, content, names)
	if err != nil {
		return 0, err
	}
	if !updated {
		return 0, ErrNotFound
	}
	return len(names), nil
}

// Delete removes the entry and its photos. Foreign and missing ids are silent
// no-ops; the caller sees the same outcome as a successful delete.
func (s *EntryService) Delete(ctx context.Context, entryID, requesterID int) error {
	return s.entries.DeleteOwned(ctx, entryID, requesterID)
}

// storeUploads persists every upload that has a filename and returns the
// stored names. Files with empty names are skipped silently.
func (s *EntryService) storeUploads(files []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, fh := range files {
		if fh == nil || fh.Filename == "" {
			continue
		}
		name, err := s.photos.Save(fh)
		if err != nil {
			return nil, fmt.Errorf("store upload %q: %w", fh.Filename, err)
		}
		names = append(names, name)
	}
	return names, nil
}
