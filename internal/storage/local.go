package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-md2cv/internal/fileutil"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// LocalStore keeps artifacts in a directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidName)
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes atomically so a concurrent Open never sees a partial file.
func (s *LocalStore) Save(_ context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(s.dir, name), data, filePermissions); err != nil {
		return fmt.Errorf("local save: %w", err)
	}
	return nil
}

// Open opens a stored artifact.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, name)) // #nosec G304 -- name validated above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("local open: %w", err)
	}
	return f, nil
}

// Delete removes a stored artifact.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}

// Artifact describes a stored file.
type Artifact struct {
	Name    string
	ModTime time.Time
}

// List returns the regular files in the storage directory, skipping
// in-progress temp files.
func (s *LocalStore) List(_ context.Context) ([]Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading storage directory: %w", err)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || ValidateName(entry.Name()) != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{Name: entry.Name(), ModTime: info.ModTime()})
	}
	return artifacts, nil
}

var _ Store = (*LocalStore)(nil)
