package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends that have been closed.
var ErrClosed = errors.New("kv store closed")

// Store is the string-keyed backend behind the repositories. Values are
// always strings; callers serialize structured values before writing.
// No call is atomic with any other call.
type Store interface {
	// HSet writes fields into the hash at key, creating it when absent.
	HSet(ctx context.Context, key string, fields map[string]string) error
	// HGetAll returns every field of the hash at key, or an empty map.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	// HGet returns a single hash field and whether it was present.
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HExists(ctx context.Context, key, field string) (bool, error)

	SAdd(ctx context.Context, key, member string) error
	SRem(ctx context.Context, key, member string) error
	SMembers(ctx context.Context, key string) ([]string, error)

	// Del removes key regardless of its type.
	Del(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
}
