// Package fs provides the filesystem adapters: recipe file operations,
// directory walking and content hashing.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// MkdirAll creates path and any missing parents.
func (f *FileSystem) MkdirAll(path string) error {
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(err, "path", path)
	}
	return nil
}

// RemoveAll removes every file and directory matching pattern, like rm -rf.
// It returns the removed paths in lexical order.
func (f *FileSystem) RemoveAll(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid pattern"), "pattern", pattern)
	}

	removed := make([]string, 0, len(matches))
	for _, match := range matches {
		if err := os.RemoveAll(match); err != nil {
			return removed, zerr.With(err, "path", match)
		}
		removed = append(removed, match)
	}
	return removed, nil
}
