package upload

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
	ErrFileTooLarge      = errors.New("file too large")
	ErrExtensionDenied   = errors.New("file extension not allowed")
	ErrEmptyFilename     = errors.New("empty file name")
	ErrUnknownUploadKind = errors.New("unknown upload kind")
)

// Kind selects the subdirectory and extension allow-list for a stored file.
type Kind string

const (
	KindVehiclePhoto Kind = "vehicles"
	KindDriverPhoto  Kind = "drivers"
	KindCheque       Kind = "cheques"
	KindInvoice      Kind = "invoices"
)

var photoExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
}

var invoiceExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".pdf": {},
}

func allowedExtensions(kind Kind) (map[string]struct{}, error) {
	switch kind {
	case KindVehiclePhoto, KindDriverPhoto, KindCheque:
		return photoExtensions, nil
	case KindInvoice:
		return invoiceExtensions, nil
	}
	return nil, ErrUnknownUploadKind
}

// Store writes uploaded files under a base directory, one
// subdirectory per kind.
type Store struct {
	baseDir  string
	maxBytes int64
}

func NewStore(baseDir string, maxBytes int64) *Store {
	return &Store{baseDir: baseDir, maxBytes: maxBytes}
}

// sanitizeFilename keeps only characters safe for a disk name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Save persists an uploaded file and returns its path relative to the
// base directory. Stored names are prefixed with a UUID so repeated
// uploads of the same file never collide.
func (s *Store) Save(header *multipart.FileHeader, kind Kind) (string, error) {
	if header.Filename == "" {
		return "", ErrEmptyFilename
	}
	if header.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	allowed, err := allowedExtensions(kind)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowed[ext]; !ok {
		return "", ErrExtensionDenied
	}

	dir := filepath.Join(s.baseDir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + "_" + sanitizeFilename(header.Filename)
	dst := filepath.Join(dir, name)

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, io.LimitReader(src, s.maxBytes)); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}

	return filepath.Join(string(kind), name), nil
}

// Remove deletes a previously stored file. Missing files are not an
// error; replacement cleanup is best-effort.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := filepath.Clean(relPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves a stored relative path to its absolute disk location.
func (s *Store) Path(relPath string) string {
	return filepath.Join(s.baseDir, filepath.Clean(relPath))
}
