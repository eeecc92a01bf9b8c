// Package storage persists application state as JSON documents under a
// handful of fixed keys, backed by SQLite or a single file.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

const (
	KeyTasks     = "tasks"
	KeyUserState = "userState"
	KeyProgress  = "progress"
	KeyBrainDump = "brainDump"
)

// KV is a flat key to JSON-document store. Get returns ErrNotFound for a
// missing key. Delete of a missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
