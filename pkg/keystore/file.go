package keystore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// validKey restricts keys to names that are safe as file names on all
// supported platforms. Both well-known keys satisfy it.
var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// File is a file-backed store keeping one file per record inside a
// directory. Writes are atomic: the value is written to a temporary
// file in the same directory and renamed into place, so a crash never
// leaves a half-written record behind.
type File struct {
	dir    string
	mu     sync.Mutex
	closed bool
}

// DefaultDir returns the default storage directory for the current
// user, typically ~/.config/locallink on Linux.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrWriteFailed, err)
	}
	return filepath.Join(base, "locallink"), nil
}

// NewFile creates a file-backed store rooted at dir, creating the
// directory if needed.
//
// Example:
//
//	dir, _ := keystore.DefaultDir()
//	s, err := keystore.NewFile(dir)
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Join(ErrWriteFailed, err)
	}
	return &File{dir: dir}, nil
}

// Get retrieves a record by key.
// Returns ErrNotFound if the record does not exist.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// Set stores a record, replacing any previous value.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+".tmp-*")
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Delete removes a record. Deleting a missing record is a no-op.
func (f *File) Delete(_ context.Context, key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Close marks the store as closed. Subsequent operations return ErrClosed.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *File) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(f.dir, key), nil
}
