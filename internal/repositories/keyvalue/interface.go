// Package keyvalue provides the durable string-keyed store that everything
// else persists through. Values are opaque strings; interpretation (JSON,
// ciphertext, encoded keys) belongs to the callers.
package keyvalue

import "context"

// Store is the narrow persistence contract consumed by the rest of the
// system.
//
// Get returns ("", nil) when the key is absent; storage failures wrap
// common.ErrStorage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
