// Package keystore persists small string-keyed records durably on the
// client side. It is the Go counterpart of the browser's local storage:
// the session component keeps the bearer token under [KeyAuthToken] and
// the cart component keeps its contents under [KeyCartItems].
//
// # Interface
//
// The [Store] interface has four operations:
//
//   - Get(ctx, key) ([]byte, error) — retrieve a record
//   - Set(ctx, key, value) error — store a record
//   - Delete(ctx, key) error — remove a record (no-op when absent)
//   - Close() error — release resources
//
// # Backends
//
// Use [NewFile] for the default durable per-user store. It keeps one
// file per record under a directory (see [DefaultDir]) and writes
// atomically via rename:
//
//	dir, _ := keystore.DefaultDir()
//	s, err := keystore.NewFile(dir)
//
// Use [NewMemory] for tests, and [NewRedis] when device state should
// roam between machines through a shared Redis instance.
//
// # Error Handling
//
// The package defines sentinel errors checked with [errors.Is]:
//
//   - [ErrNotFound] — record does not exist
//   - [ErrInvalidKey] — key cannot be mapped onto the backing storage
//   - [ErrClosed] — operation on a closed store
//   - [ErrReadFailed], [ErrWriteFailed] — backing storage failures
package keystore
