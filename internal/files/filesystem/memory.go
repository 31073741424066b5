package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return 0 }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes regardless of the host OS.
type MemoryFileSystem struct {
	entries    map[string]*memoryFileInfo // absolute path -> info
	readErrors map[string]error           // directories that fail to list
	targets    map[string]string          // symlink path -> target path
	root       string
}

// NewMemoryFileSystem creates a new in-memory filesystem containing only
// the root directory.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries:    make(map[string]*memoryFileInfo),
		readErrors: make(map[string]error),
		targets:    make(map[string]string),
		root:       root,
	}
	mfs.entries[root] = &memoryFileInfo{name: path.Base(root), mode: 0755 | fs.ModeDir, modTime: time.Now()}
	return mfs
}

// Root returns the root directory path.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a regular file, creating parent directories as needed.
// Relative paths are resolved against the root.
func (mfs *MemoryFileSystem) AddFile(filePath string) {
	mfs.add(filePath, 0644)
}

// AddDir adds a directory, creating parent directories as needed.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.add(dirPath, 0755|fs.ModeDir)
}

// AddSymlink adds a dangling symbolic link entry.
func (mfs *MemoryFileSystem) AddSymlink(linkPath string) {
	mfs.add(linkPath, 0777|fs.ModeSymlink)
}

// AddSymlinkTo adds a symbolic link pointing at target. ReadDir reports the
// link itself; Stat resolves it.
func (mfs *MemoryFileSystem) AddSymlinkTo(linkPath, target string) {
	mfs.add(linkPath, 0777|fs.ModeSymlink)
	mfs.targets[mfs.abs(linkPath)] = mfs.abs(target)
}

// FailReadDir makes ReadDir on dirPath return err.
func (mfs *MemoryFileSystem) FailReadDir(dirPath string, err error) {
	mfs.readErrors[mfs.abs(dirPath)] = err
}

func (mfs *MemoryFileSystem) add(p string, mode fs.FileMode) {
	absPath := mfs.abs(p)
	mfs.entries[absPath] = &memoryFileInfo{name: path.Base(absPath), mode: mode, modTime: time.Now()}
	mfs.ensureDirectoriesExist(absPath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(p string) {
	dir := path.Dir(p)
	if dir == p || dir == "." {
		return
	}
	if _, exists := mfs.entries[dir]; exists {
		return
	}
	mfs.entries[dir] = &memoryFileInfo{name: path.Base(dir), mode: 0755 | fs.ModeDir, modTime: time.Now()}
	mfs.ensureDirectoriesExist(dir)
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) && !strings.HasPrefix(p, mfs.root+"/") {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	absPath := mfs.abs(dirPath)

	if err, failing := mfs.readErrors[absPath]; failing {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	info, exists := mfs.entries[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to read directory: %w", fs.ErrNotExist)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}

	var result []FileInfo
	for p, entry := range mfs.entries {
		if p != absPath && path.Dir(p) == absPath {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result, nil
}

// Stat implements FileSystemProvider.Stat. Symbolic links are resolved;
// a dangling link reports fs.ErrNotExist.
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	p := mfs.abs(statPath)
	for hops := 0; hops < 40; hops++ {
		info, exists := mfs.entries[p]
		if !exists {
			return nil, fmt.Errorf("stat %s: %w", statPath, fs.ErrNotExist)
		}
		if info.mode&fs.ModeSymlink == 0 {
			return info, nil
		}
		target, ok := mfs.targets[p]
		if !ok {
			return nil, fmt.Errorf("stat %s: %w", statPath, fs.ErrNotExist)
		}
		p = target
	}
	return nil, fmt.Errorf("stat %s: too many levels of symbolic links", statPath)
}

// Join implements FileSystemProvider.Join
func (mfs *MemoryFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}
