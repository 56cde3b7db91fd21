// Package fsutil provides the shared write primitives: atomic whole-file
// writes and guarded writes that refuse to clobber user-owned content.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConflict is returned when a destination already holds content this
// tool does not own. Callers wrap it into their own error types.
var ErrConflict = errors.New("destination already exists")

// AtomicWrite writes data to path using a tmp+rename strategy.
// If rename fails, the tmp file is cleaned up.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// PathExists reports whether anything exists at path, using Lstat so
// dangling symlinks still count as present.
func PathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GuardedWrite writes data at path only when nothing exists there yet,
// creating parent directories as needed. An occupied destination returns
// ErrConflict and leaves the existing bytes untouched.
func GuardedWrite(path string, data []byte, perm os.FileMode) error {
	exists, err := PathExists(path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrConflict, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// EnsureSymlink creates a symlink at linkPath pointing to target. An
// existing symlink to target is replaced, keeping the operation idempotent;
// anything else at linkPath is foreign content and returns ErrConflict.
func EnsureSymlink(target, linkPath string) error {
	info, err := os.Lstat(linkPath)
	switch {
	case os.IsNotExist(err):
		// Fall through to create.
	case err != nil:
		return err
	case info.Mode()&os.ModeSymlink == 0:
		return fmt.Errorf("%w: %s", ErrConflict, linkPath)
	default:
		existing, err := os.Readlink(linkPath)
		if err != nil {
			return err
		}
		if existing != target {
			return fmt.Errorf("%w: %s points elsewhere", ErrConflict, linkPath)
		}
		if err := os.Remove(linkPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return err
	}
	return os.Symlink(target, linkPath)
}
