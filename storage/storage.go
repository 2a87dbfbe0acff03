// Package storage defines the browser-scoped key-value store the portal keeps its
// session in. A Store behaves like the browser's local storage: it survives page
// loads, it is scoped to one browser and any call may fail.
package storage

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned by GetItem when the key has no value.
	ErrNotFound = errors.New("storage: item not found")
	// ErrCorrupt is returned when a persisted value cannot be decoded or authenticated.
	ErrCorrupt = errors.New("storage: item corrupt")
	// ErrQuotaExceeded is returned when a value is too large to persist.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Store is a key-value store scoped to a single browser.
type Store interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes the key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Provider binds a Store to the browser that sent r. Writes are delivered through w.
type Provider interface {
	For(w http.ResponseWriter, r *http.Request) Store
}
