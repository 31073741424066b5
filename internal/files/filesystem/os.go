package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystemProvider for the OS filesystem.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) ReadDir(path string) ([]FileInfo, error) {
	// os.ReadDir sorts by file name.
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	return entryInfos(entries), nil
}

// entryInfos converts directory entries to FileInfo. Info uses lstat
// semantics, so symlinks stay symlinks. An entry whose Info fails, typically
// because it was removed after the directory was listed, is left out; the
// rest of the level is still returned.
func entryInfos(entries []fs.DirEntry) []FileInfo {
	result := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		result = append(result, info)
	}
	return result
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

func (p *OSFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}
