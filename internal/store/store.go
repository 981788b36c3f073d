// Package store provides the key-value persistence backends for serialized
// league saves. Writes are last-writer-wins: concurrent writers to the same
// key overwrite each other silently.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for an unknown save key.
var ErrNotFound = errors.New("save not found")

// Record is one stored save: the key and the opaque serialized league.
type Record struct {
	Key       string
	Data      string
	UpdatedAt time.Time
}

// Entry is a listing row for one stored save.
type Entry struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Backend is a named key-value store for league saves.
type Backend interface {
	Name() string
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, key string) (Record, error)
	Put(ctx context.Context, key, data string) error
	Close() error
}
