// Package fsx validates file paths before they are opened for reading,
// writing, or appending, so that callers fail fast with a typed error
// instead of partway through an I/O operation.
//
// Errors are *fs.PathError values wrapping either the std sentinels
// (fs.ErrNotExist, fs.ErrPermission, fs.ErrExist) or the sentinels defined
// here, so callers can branch with errors.Is.
package fsx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
)

var (
	// ErrIsDirectory is returned when a file path points at a directory.
	ErrIsDirectory = errors.New("path is a directory")
	// ErrNotRegular is returned when a path exists but is not a regular
	// file (device, socket, ...).
	ErrNotRegular = errors.New("not a regular file")
	// ErrNotDirectory is returned when the parent of an output path exists
	// but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrEmptyFile is returned when appending to a file that has no
	// content, and therefore no header to validate against.
	ErrEmptyFile = errors.New("file is empty")
)

// Exists reports whether the path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsRegular reports whether the path exists and is a regular file.
func IsRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists reports whether the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CheckReadable verifies that path exists, is a regular file, and can be
// opened for reading. The open probe is how readability is decided, so the
// result reflects permissions the way the kernel sees them.
func CheckReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "read", Path: path, Err: ErrIsDirectory}
	}
	if !info.Mode().IsRegular() {
		return &fs.PathError{Op: "read", Path: path, Err: ErrNotRegular}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// CheckWritable verifies that path can be created or truncated. An existing
// path fails with fs.ErrExist unless overwrite is set; a missing path is
// writable when its parent directory exists. Permission on the parent is
// left to the subsequent create, which reports it identically.
func CheckWritable(path string, overwrite bool) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !overwrite {
			return &fs.PathError{Op: "write", Path: path, Err: fs.ErrExist}
		}
		if info.IsDir() {
			return &fs.PathError{Op: "write", Path: path, Err: ErrIsDirectory}
		}
		if !info.Mode().IsRegular() {
			return &fs.PathError{Op: "write", Path: path, Err: ErrNotRegular}
		}
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return err
		}
		return f.Close()

	case errors.Is(err, fs.ErrNotExist):
		dir := filepath.Dir(path)
		dinfo, derr := os.Stat(dir)
		if derr != nil {
			return derr
		}
		if !dinfo.IsDir() {
			return &fs.PathError{Op: "write", Path: dir, Err: ErrNotDirectory}
		}
		return nil

	default:
		return err
	}
}

// CheckAppendable verifies that path holds an existing, non-empty regular
// file that is both writable and readable. Readability matters because the
// file's header is validated before anything is appended.
func CheckAppendable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "append", Path: path, Err: ErrIsDirectory}
	}
	if !info.Mode().IsRegular() {
		return &fs.PathError{Op: "append", Path: path, Err: ErrNotRegular}
	}

	w, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	if info.Size() == 0 {
		return &fs.PathError{Op: "append", Path: path, Err: ErrEmptyFile}
	}

	r, err := os.Open(path)
	if err != nil {
		return err
	}
	return r.Close()
}

// OpenRead validates the path with CheckReadable and opens it.
func OpenRead(path string) (*os.File, error) {
	if err := CheckReadable(path); err != nil {
		return nil, err
	}
	return os.Open(path)
}

// OpenWrite validates the path with CheckWritable and opens it truncated,
// creating it if needed.
func OpenWrite(path string, overwrite bool) (*os.File, error) {
	if err := CheckWritable(path, overwrite); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

// OpenAppend validates the path with CheckAppendable and opens it for
// appending.
func OpenAppend(path string) (*os.File, error) {
	if err := CheckAppendable(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
}

// TempSibling returns a fresh hidden path in the same directory as path,
// for staging a replacement file that will be renamed over the original.
// Staying on the same filesystem keeps the rename atomic.
func TempSibling(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, ksuid.New().String()))
}
