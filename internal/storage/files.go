// Package storage persists uploaded images on the local filesystem under a
// single uploads directory, with sanitized timestamp-prefixed filenames.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/aquatrace/aquatrace/internal/apperror"
)

// allowedExtensions is the accepted image extension set, lowercase with the
// leading dot.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// AllowedExtension reports whether filename carries an accepted image
// extension (case-insensitive).
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FileStore writes uploads into a fixed directory and reads them back by
// their stored name.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory uploads are stored under.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes the upload to disk and returns the stored filename. The name
// is the original base name sanitized and prefixed with an upload timestamp,
// so repeated uploads of the same file never collide.
func (s *FileStore) Save(filename string, r io.Reader) (string, error) {
	if !AllowedExtension(filename) {
		return "", apperror.ValidationFailed("file", "unsupported file type")
	}

	stored := time.Now().UTC().Format("20060102_150405") + "_" + sanitizeName(filename)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return stored, nil
}

// Path resolves a stored filename to its on-disk path, rejecting any name
// that would escape the upload directory.
func (s *FileStore) Path(stored string) (string, error) {
	if stored != filepath.Base(stored) || stored == "." || stored == "" {
		return "", apperror.ValidationFailed("filename", "invalid filename")
	}
	p := filepath.Join(s.dir, stored)
	if _, err := os.Stat(p); err != nil {
		return "", apperror.NotFound("file", stored)
	}
	return p, nil
}

// sanitizeName reduces an arbitrary client filename to a safe base name:
// path components stripped, anything outside [a-zA-Z0-9._-] replaced with
// underscores. A name that sanitizes to nothing useful gets a generated one.
func sanitizeName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		cleaned = xid.New().String()
	}
	return cleaned + ext
}
