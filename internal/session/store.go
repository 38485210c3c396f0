package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Update when no value is stored under the id.
var ErrNotFound = errors.New("session not found")

// Store keeps one value per session id. Update runs fn against the stored
// value atomically with respect to other calls for the same store, so a
// read-check-write sequence cannot interleave with another transition.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Update(ctx context.Context, id string, fn func(*T) error) (T, error)
	Delete(ctx context.Context, id string) error
	NewID() string
}
