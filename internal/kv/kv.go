// Package kv provides the key-value persistence boundary for CookPro.
package kv

import "context"

// Store is the abstract key-value interface the comment store persists through.
// Get reports absence via the bool; a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
