package keystore

import "context"

// Well-known record keys used by the SDK. Both records are per-device
// and unscoped by user, mirroring the records the web client keeps in
// browser local storage.
const (
	// KeyAuthToken holds the raw bearer token string.
	KeyAuthToken = "authToken"

	// KeyCartItems holds the cart contents as a JSON-encoded array.
	KeyCartItems = "cartItems"
)

// Store persists small string-keyed records durably on the client side.
// It is the single writer of durable state: session and cart components
// call it as a side effect of their transitions, nothing else reads it
// directly.
type Store interface {
	// Get retrieves a record by key.
	// Returns ErrNotFound if the record does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a record, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a record. Deleting a missing record is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
