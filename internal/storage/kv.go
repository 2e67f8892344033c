// Package storage provides the key-value persistence primitive the catalog
// collections are written through.
package storage

import "context"

// KV is a string-keyed document store. Values are opaque serialized
// documents; a missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
}
