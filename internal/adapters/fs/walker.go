package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// alwaysSkipped are directory names never descended into.
var alwaysSkipped = []string{".git", ".hg", "__pycache__", ".ipynb_checkpoints"}

// Walker lists the directories of a docs tree.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkDirs yields root and every directory below it.
// Entries of skip are paths relative to root; they and their subtrees are
// left out, as are version control and bytecode cache directories.
func (w *Walker) WalkDirs(root string, skip []string) iter.Seq[string] {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[filepath.Clean(s)] = true
	}

	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				// Unreadable entries are skipped rather than aborting the walk.
				return nil
			}

			if path != root && w.shouldSkip(root, path, d.Name(), skipped) {
				return filepath.SkipDir
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// ShouldSkip reports whether path, a directory below root, is excluded by skip.
func (w *Walker) ShouldSkip(root, path string, skip []string) bool {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[filepath.Clean(s)] = true
	}
	return w.shouldSkip(root, path, filepath.Base(path), skipped)
}

func (w *Walker) shouldSkip(root, path, name string, skipped map[string]bool) bool {
	if slices.Contains(alwaysSkipped, name) {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for dir := rel; dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		if skipped[dir] {
			return true
		}
	}
	return false
}
