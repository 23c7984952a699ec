package source

import (
	"fmt"
	"os"

	"github.com/golang/snappy"
)

// Cache stores the last good source payload on disk, snappy-compressed.
// A Cache with an empty path is disabled: Write succeeds silently and
// Read always fails.
type Cache struct {
	path string
}

// NewCache creates a cache at path; empty path disables it.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Write compresses and stores the payload. The write goes through a
// temp file and rename so a crash never leaves a truncated cache.
func (c *Cache) Write(data []byte) error {
	if c.path == "" {
		return nil
	}

	compressed := snappy.Encode(nil, data)

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to commit cache: %w", err)
	}
	return nil
}

// Read loads and decompresses the cached payload.
func (c *Cache) Read() ([]byte, error) {
	if c.path == "" {
		return nil, fmt.Errorf("cache disabled")
	}

	compressed, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("snappy decompress failed: %w", err)
	}
	return data, nil
}
