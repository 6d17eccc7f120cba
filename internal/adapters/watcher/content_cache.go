package watcher

import (
	"sync"

	"go.trai.ch/docmk/internal/adapters/fs"
)

// ContentCache remembers the content hash of files seen by the watcher.
type ContentCache struct {
	hasher *fs.Hasher

	mu   sync.Mutex
	sums map[string]uint64
}

// NewContentCache creates an empty cache.
func NewContentCache(hasher *fs.Hasher) *ContentCache {
	return &ContentCache{
		hasher: hasher,
		sums:   make(map[string]uint64),
	}
}

// Changed records the current content of path and reports whether it differs
// from what was recorded before. Files seen for the first time and files that
// cannot be read count as changed.
func (c *ContentCache) Changed(path string) bool {
	sum, err := c.hasher.HashFile(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		delete(c.sums, path)
		return true
	}
	prev, seen := c.sums[path]
	c.sums[path] = sum
	return !seen || prev != sum
}

// Forget drops the recorded hash of path.
func (c *ContentCache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sums, path)
}
