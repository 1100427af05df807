package providers

import (
	"context"
)

// KeyValueStore is the minimal persistence contract the collection store
// and session store are written against: whole values under fixed keys.
type KeyValueStore interface {
	// Get retrieves the value for a key. The second return is false when
	// the key does not exist; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value under a key, overwriting any prior contents whole.
	Set(ctx context.Context, key string, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
