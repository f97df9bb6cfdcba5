// Package storage is the file-storage collaborator: handlers pass raw bytes
// in, get a stable path back, and persist only the path.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// FileStore persists uploaded files and returns their stored path.
type FileStore interface {
	Save(ctx context.Context, originalName string, data []byte) (string, error)
}

type localStore struct {
	dir string
}

// NewLocalStore stores files under dir, creating it if needed. Stored names
// are uuid-based so uploads never collide or traverse paths.
func NewLocalStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewUnavailable("upload directory unavailable", err)
	}
	return &localStore{dir: dir}, nil
}

func (s *localStore) Save(ctx context.Context, originalName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.NewValidationError("empty file", nil)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.NewUnavailable("file storage unavailable", err)
	}
	return path, nil
}
