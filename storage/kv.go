package storage

import (
    "context"
    "errors"
)

// ErrNotFound is returned by Get when the key has never been written
// or has expired.
var ErrNotFound = errors.New("storage: key not found")

// KV is the string-keyed persistence surface the cart store writes
// through. Implementations must treat an absent key as ErrNotFound,
// not as an empty value.
type KV interface {
    Get(ctx context.Context, key string) (string, error)
    Set(ctx context.Context, key, value string) error
    Remove(ctx context.Context, key string) error
}
