package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store that keeps one file per key under a data directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a half-written value behind.
type File struct {
	dataDir string
	mu      sync.RWMutex
}

// NewFile creates a file-backed store rooted at dataDir, creating it if needed.
func NewFile(dataDir string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &File{dataDir: dataDir}, nil
}

// Get reads the value stored for key, or absent when no file exists.
func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return data, true, nil
}

// Set writes value for key atomically.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dst := f.path(key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("failed to commit key %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; every Set is already flushed to its file.
func (f *File) Close() error {
	return nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dataDir, key+".json")
}
