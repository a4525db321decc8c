// Package blob provides flat key-value storage for report artifacts.
//
// A [Backend] stores named byte blobs in a single namespace with no
// hierarchy. Three implementations are provided:
//
//   - [FileBackend]: one file per key in a local directory (the default)
//   - [MemoryBackend]: an in-process map, useful for tests and embedding
//   - [RedisBackend]: keys under a prefix in a Redis database
//
// Names are plain file names such as "lhr-1700000000000.json"; path
// separators are rejected so the file backend never escapes its directory.
package blob

import (
	"context"
	"strings"

	perrors "github.com/matzehuels/perfreport/pkg/errors"
)

// Backend is a flat blob namespace.
//
// Get returns an error satisfying [IsNotFound] for missing names.
// Delete of a missing name is not an error. List returns names in the
// backend's natural enumeration order, which callers must not rely on.
type Backend interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]string, error)

	// Ensure makes the namespace usable, creating it if needed. It is
	// idempotent.
	Ensure(ctx context.Context) error

	// Location describes where blobs live (a directory or a URL).
	Location() string

	Close() error
}

// ValidateName rejects names that are empty or contain path components.
func ValidateName(name string) error {
	if name == "" {
		return perrors.New(perrors.ErrCodeInvalidPath, "blob name cannot be empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return perrors.New(perrors.ErrCodeInvalidPath, "invalid blob name %q", name)
	}
	return nil
}
