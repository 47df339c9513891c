package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aquatrace/aquatrace/internal/apperror"
)

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"photo.png", true},
		{"photo.gif", true},
		{"photo.bmp", true},
		{"photo.webp", true},
		{"photo.tiff", false},
		{"notes.txt", false},
		{"noext", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := AllowedExtension(tt.filename); got != tt.want {
			t.Errorf("AllowedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestSaveAndPath(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	stored, err := store.Save("reef shot.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasSuffix(stored, "_reef_shot.jpg") {
		t.Errorf("stored name = %q, want sanitized original with timestamp prefix", stored)
	}

	p, err := store.Path(stored)
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q, want %q", data, "image-bytes")
	}
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	_, err = store.Save("malware.exe", strings.NewReader("x"))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Save() error = %v, want validation error", err)
	}
}

func TestSaveStripsPathComponents(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	stored, err := store.Save("../../etc/passwd.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if strings.Contains(stored, "/") || strings.Contains(stored, "..") {
		t.Errorf("stored name %q leaks path components", stored)
	}
	if filepath.Dir(stored) != "." {
		t.Errorf("stored name %q is not a bare filename", stored)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	for _, name := range []string{"../secret.png", "a/b.png", "", "."} {
		if _, err := store.Path(name); err == nil {
			t.Errorf("Path(%q) = nil error, want rejection", name)
		}
	}
}

func TestPathMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	_, err = store.Path("20240101_000000_nope.jpg")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Path() error = %v, want not-found", err)
	}
}
