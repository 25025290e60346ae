// Package storage persists uploaded photo blobs on the local filesystem.
// Stored names are "{uuid}_{sanitizedOriginalName}" so two uploads with the
// same original name never collide.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyFilename = errors.New("empty filename")
	ErrInvalidName   = errors.New("invalid stored filename")
)

type Storage struct {
	dir string
}

// New ensures dir exists and returns a storage rooted there.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %q: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

// Save writes the uploaded file under a freshly generated unique name and
// returns that name.
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", ErrEmptyFilename
	}

	name := uuid.NewString() + "_" + sanitizeFilename(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create %q: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write %q: %w", name, err)
	}
	return name, nil
}

// Path resolves a stored name to a filesystem path. Names that would escape
// the uploads directory or that do not exist are rejected.
func (s *Storage) Path(storedName string) (string, error) {
	if storedName == "" || storedName == "." || storedName == ".." ||
		storedName != filepath.Base(storedName) {
		return "", ErrInvalidName
	}
	p := filepath.Join(s.dir, storedName)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("stat %q: %w", storedName, err)
	}
	return p, nil
}

// sanitizeFilename keeps only a safe subset of the original name: the base
// name with anything outside [A-Za-z0-9._-] replaced by underscores.
func sanitizeFilename(name string) string {
	// Strip any path component, whichever separator the client used.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		out = "file"
	}
	return out
}
