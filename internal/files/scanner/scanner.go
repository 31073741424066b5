package scanner

import (
	"io/fs"
	"iter"

	"github.com/vvka-141/stguard/internal/files/filesystem"
	"github.com/vvka-141/stguard/internal/hazard"
	"github.com/vvka-141/stguard/pkg/stguard"
)

// Scanner implements stguard.TreeScanner.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	logger     stguard.Logger
}

// NewScanner creates a Scanner that reads the host filesystem.
func NewScanner(logger stguard.Logger) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), logger)
}

// NewScannerWithFS creates a Scanner over a custom filesystem provider.
// Panics if fsProvider or logger is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, logger stguard.Logger) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider, logger: logger}
}

// Scan returns the findings of folder in walk order: a parent level before
// its children, and within a level in the order produced by hazard.Inspect.
// Each iteration announces the folder once through the logger.
func (s *Scanner) Scan(folder stguard.SynchronizedFolder) iter.Seq[stguard.Finding] {
	return func(yield func(stguard.Finding) bool) {
		s.logger.Info("checking %s", folder.Path)
		s.walk(folder.Path, yield)
	}
}

// walk inspects dir and then descends into its subdirectories.
// It returns false once yield asked to stop.
func (s *Scanner) walk(dir string, yield func(stguard.Finding) bool) bool {
	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		s.logger.Error("skipping %s: %v", dir, err)
		return true
	}

	var dirs, files, subdirs []string
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			dirs = append(dirs, entry.Name())
			subdirs = append(subdirs, entry.Name())
		case s.linksToDir(dir, entry):
			dirs = append(dirs, entry.Name())
		default:
			files = append(files, entry.Name())
		}
	}

	names := make([]string, 0, len(entries))
	names = append(names, dirs...)
	names = append(names, files...)

	for _, f := range hazard.Inspect(dir, names, s.fsProvider.Join) {
		if !yield(f) {
			return false
		}
	}

	for _, name := range subdirs {
		if !s.walk(s.fsProvider.Join(dir, name), yield) {
			return false
		}
	}
	return true
}

// linksToDir reports whether entry is a symbolic link whose target is a
// directory. Such links are ordered with the directories of their level but
// never descended into.
func (s *Scanner) linksToDir(dir string, entry filesystem.FileInfo) bool {
	if entry.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := s.fsProvider.Stat(s.fsProvider.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}
