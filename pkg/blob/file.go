package blob

import (
	"context"
	"os"
	"path/filepath"
)

// FileBackend stores each blob as a file directly inside dir.
// Filesystem errors are returned as-is.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir. The directory is not
// created until [FileBackend.Ensure] is called, so read-only callers can
// point it at an existing directory without side effects.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the backing directory.
func (b *FileBackend) Dir() string { return b.dir }

// Location returns the backing directory.
func (b *FileBackend) Location() string { return b.dir }

// Ensure creates the directory and any missing parents.
func (b *FileBackend) Ensure(ctx context.Context) error {
	return EnsureDir(b.dir)
}

// EnsureDir creates dir and all missing ancestors. It is a no-op when dir
// already exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// Get reads a blob.
func (b *FileBackend) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return os.ReadFile(b.path(name))
}

// Put writes a blob, replacing any existing content.
func (b *FileBackend) Put(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return os.WriteFile(b.path(name), data, 0644)
}

// Delete removes a blob.
func (b *FileBackend) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(b.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether a blob is present.
func (b *FileBackend) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(b.path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

// List returns the names of regular files in the directory.
func (b *FileBackend) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Close does nothing for file backend.
func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name)
}

// Ensure FileBackend implements Backend.
var _ Backend = (*FileBackend)(nil)
