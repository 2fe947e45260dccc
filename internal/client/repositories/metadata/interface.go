// Package metadata is the key/value table behind the local session store.
package metadata

import (
	"context"
	"time"
)

// Entry is a stored value together with the time it was last written.
type Entry struct {
	Value     []byte
	UpdatedAt time.Time
}

// Repository stores opaque values by key. Get returns a nil Entry for an
// absent key, so absent and empty values stay distinguishable.
type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
