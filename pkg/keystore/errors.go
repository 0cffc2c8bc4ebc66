package keystore

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("keystore: record not found")

	// ErrInvalidKey is returned when a key contains characters that
	// cannot be mapped safely onto the backing storage.
	ErrInvalidKey = errors.New("keystore: invalid key")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("keystore: closed")

	// ErrReadFailed is returned when the backing storage cannot be read.
	ErrReadFailed = errors.New("keystore: failed to read record")

	// ErrWriteFailed is returned when the backing storage cannot be written.
	ErrWriteFailed = errors.New("keystore: failed to write record")
)
