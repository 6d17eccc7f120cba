package ports

// FileSystem defines the filesystem operations recipes perform directly.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
	// RemoveAll removes every path matching pattern. A pattern without
	// matches is not an error.
	RemoveAll(pattern string) ([]string, error)
}
