package shed

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// File permissions.
const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// DirStore reads and writes shed files addressed by paths relative to the
// shed root. Writes go through a temp file and rename so a crash never
// leaves a half-written note behind.
type DirStore struct {
	root string
}

// NewDirStore returns a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

// Root returns the shed root the store was created with.
func (d *DirStore) Root() string { return d.root }

// Abs resolves a shed-relative path to an absolute one.
func (d *DirStore) Abs(rel string) string { return filepath.Join(d.root, rel) }

// ReadFile reads a shed-relative file.
func (d *DirStore) ReadFile(rel string) ([]byte, error) {
	return os.ReadFile(d.Abs(rel))
}

// WriteFile writes a shed-relative file atomically, creating parent
// directories as needed.
func (d *DirStore) WriteFile(rel string, data []byte) error {
	return writeFileAtomic(d.Abs(rel), data)
}

// Exists reports whether a shed-relative file exists.
func (d *DirStore) Exists(rel string) bool {
	_, err := os.Stat(d.Abs(rel))

	return err == nil
}

// writeFileAtomic stages the data in a temp file next to path and renames
// it into place. The parent directory is created first; atomic.WriteFile
// needs it to exist for the temp file.
func writeFileAtomic(path string, data []byte) error {
	mkdirErr := os.MkdirAll(filepath.Dir(path), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), mkdirErr)
	}

	writeErr := atomic.WriteFile(path, bytes.NewReader(data))
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), writeErr)
	}

	// Set file permissions (atomic.WriteFile doesn't set them for new files)
	chmodErr := os.Chmod(path, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("failed to set file permissions: %w", chmodErr)
	}

	return nil
}
