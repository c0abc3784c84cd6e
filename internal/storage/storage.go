// Package storage keeps generated PDFs until they are downloaded or expire.
package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound    = errors.New("artifact not found")
	ErrInvalidName = errors.New("invalid artifact name")
)

// namePattern restricts stored names to flat, dot-free stems plus one
// extension, so a name can never address another directory.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[a-z]+$`)

// Store holds artifacts by flat file name.
type Store interface {
	// Save writes data under name, replacing any previous artifact.
	Save(ctx context.Context, name string, data []byte) error
	// Open returns a reader for name; callers close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes name. Deleting a missing artifact is not an error.
	Delete(ctx context.Context, name string) error
}

// ValidateName rejects names that are not a single safe file name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}
