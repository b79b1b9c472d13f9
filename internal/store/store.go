// Package store defines the storage backend interface for keyed artifacts.
package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrNotFound is returned when no artifact exists under a key.
	ErrNotFound = errors.New("store: artifact not found")

	// ErrInvalidKey is returned for keys that are empty or escape the store.
	ErrInvalidKey = errors.New("store: invalid key")
)

// Store defines the interface for storage backends. Artifacts are opaque
// bytes; implementations handle paths and naming internally.
type Store interface {
	// Get returns the artifact stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous artifact. A failed
	// Put leaves the previous artifact in place.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the artifact stored under key.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// ValidateKey checks that key is a clean, relative, slash-separated path.
func ValidateKey(key string) error {
	switch {
	case key == "" || key == ".":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.HasPrefix(key, "/"):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidKey, key)
	case strings.ContainsRune(key, '\\'):
		return fmt.Errorf("%w: %q contains a backslash", ErrInvalidKey, key)
	case path.Clean(key) != key:
		return fmt.Errorf("%w: %q is not clean", ErrInvalidKey, key)
	case key == ".." || strings.HasPrefix(key, "../"):
		return fmt.Errorf("%w: %q escapes the store", ErrInvalidKey, key)
	}
	return nil
}

// Canceled returns ctx's error if it is already done.
func Canceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
