package core

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a durable byte store for client state snapshots.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound if key was never set or has been deleted.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Namespaced builds the storage key of a snapshot owned by a single client.
func Namespaced(namespace, owner string) string {
	return namespace + ":" + owner
}
