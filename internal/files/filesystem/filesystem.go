package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystemProvider exposes the read-only operations needed to walk a tree.
type FileSystemProvider interface {
	// ReadDir returns the entries of the directory at path, sorted by name.
	// Symbolic links are reported as links: IsDir() is false for a link
	// pointing to a directory, so walkers never follow them.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path, following
	// symbolic links.
	Stat(path string) (FileInfo, error)

	// Join joins path elements using the provider's separator.
	Join(elem ...string) string
}
