package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/stguard/internal/files/filesystem"
	"github.com/vvka-141/stguard/internal/logging"
	"github.com/vvka-141/stguard/pkg/stguard"
)

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func sampleTree() *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem("/sync")
	mfs.AddDir(".stfolder")
	mfs.AddFile("Photo.JPG")
	mfs.AddFile("photo.jpg")
	mfs.AddFile("docs/report.sync-conflict-20230101-120000.txt")
	mfs.AddFile("docs/notes?.txt")
	mfs.AddFile("docs/deep/ok.txt")
	mfs.AddFile("music/AC:DC.mp3")
	return mfs
}

func collect(s *Scanner, folder string) []stguard.Finding {
	return slices.Collect(s.Scan(stguard.SynchronizedFolder{Path: folder}))
}

func paths(findings []stguard.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Path
	}
	return out
}

func TestScan_WalkOrder(t *testing.T) {
	s := NewScannerWithFS(sampleTree(), logging.NewNullLogger())

	got := collect(s, "/sync")
	assert.Equal(t, []string{
		"/sync/photo.jpg",
		"/sync/docs/report.sync-conflict-20230101-120000.txt",
		"/sync/docs/notes?.txt",
		"/sync/music/AC:DC.mp3",
	}, paths(got))

	assert.Equal(t, stguard.CategoryCaseCollision, got[0].Category)
	assert.Equal(t, stguard.CategorySyncConflict, got[1].Category)
	assert.Equal(t, []rune{'?'}, got[2].Chars)
	assert.Equal(t, []rune{':'}, got[3].Chars)
}

func TestScan_Idempotent(t *testing.T) {
	s := NewScannerWithFS(sampleTree(), logging.NewNullLogger())
	seq := s.Scan(stguard.SynchronizedFolder{Path: "/sync"})

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestScan_AnnouncesFolderPerIteration(t *testing.T) {
	logger := &recordingLogger{}
	s := NewScannerWithFS(sampleTree(), logger)
	seq := s.Scan(stguard.SynchronizedFolder{Path: "/sync"})

	assert.Empty(t, logger.infos, "scan must not start before iteration")
	slices.Collect(seq)
	slices.Collect(seq)
	assert.Equal(t, []string{"checking /sync", "checking /sync"}, logger.infos)
}

func TestScan_EarlyStop(t *testing.T) {
	s := NewScannerWithFS(sampleTree(), logging.NewNullLogger())

	var seen []stguard.Finding
	for f := range s.Scan(stguard.SynchronizedFolder{Path: "/sync"}) {
		seen = append(seen, f)
		if len(seen) == 2 {
			break
		}
	}
	assert.Len(t, seen, 2)
}

func TestScan_FindingsStayInsideFolder(t *testing.T) {
	mfs := sampleTree()
	mfs.AddFile("/elsewhere/bad?.txt")
	s := NewScannerWithFS(mfs, logging.NewNullLogger())

	for _, f := range collect(s, "/sync") {
		assert.True(t, strings.HasPrefix(f.Path, "/sync/"), f.Path)
	}
}

func TestScan_DirectoriesBeforeFiles(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/sync")
	mfs.AddFile("b:file")
	mfs.AddDir("z:dir")

	s := NewScannerWithFS(mfs, logging.NewNullLogger())
	assert.Equal(t, []string{"/sync/z:dir", "/sync/b:file"}, paths(collect(s, "/sync")))
}

func TestScan_CaseCollisionBetweenDirAndFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/sync")
	mfs.AddDir("Docs")
	mfs.AddFile("docs")

	s := NewScannerWithFS(mfs, logging.NewNullLogger())
	got := collect(s, "/sync")
	require.Len(t, got, 1)
	assert.Equal(t, "/sync/docs", got[0].Path)
}

func TestScan_SymlinksAreNotFollowed(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/sync")
	mfs.AddSymlink("link?")

	s := NewScannerWithFS(mfs, logging.NewNullLogger())
	got := collect(s, "/sync")
	require.Len(t, got, 1)
	assert.Equal(t, "/sync/link?", got[0].Path)
}

func TestScan_SymlinkToDirectoryOrderedWithDirectories(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/sync")
	mfs.AddFile("a:file")
	mfs.AddFile("/elsewhere/inner/bad?.txt")
	mfs.AddSymlinkTo("z:link", "/elsewhere/inner")
	mfs.AddSymlink("m:dangling")

	s := NewScannerWithFS(mfs, logging.NewNullLogger())
	assert.Equal(t, []string{
		"/sync/z:link",
		"/sync/a:file",
		"/sync/m:dangling",
	}, paths(collect(s, "/sync")))
}

func TestScan_OSSymlinkToDirectoryIsNotDescended(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on Windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "bad?.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a:file"), nil, 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "z:link")))

	s := NewScanner(logging.NewNullLogger())
	assert.Equal(t, []string{
		filepath.Join(root, "z:link"),
		filepath.Join(root, "a:file"),
	}, paths(collect(s, root)))
}

func TestScan_UnreadableDirectoryIsSkipped(t *testing.T) {
	mfs := sampleTree()
	mfs.FailReadDir("docs", errors.New("permission denied"))
	logger := &recordingLogger{}

	s := NewScannerWithFS(mfs, logger)
	got := collect(s, "/sync")

	assert.Equal(t, []string{"/sync/photo.jpg", "/sync/music/AC:DC.mp3"}, paths(got))
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "/sync/docs")
	assert.Contains(t, logger.errors[0], "permission denied")
}

func TestScan_MissingFolder(t *testing.T) {
	logger := &recordingLogger{}
	s := NewScannerWithFS(filesystem.NewMemoryFileSystem("/sync"), logger)

	assert.Empty(t, collect(s, "/gone"))
	assert.Len(t, logger.errors, 1)
}

func TestScan_EmptyFolder(t *testing.T) {
	s := NewScannerWithFS(filesystem.NewMemoryFileSystem("/sync"), logging.NewNullLogger())
	assert.Empty(t, collect(s, "/sync"))
}

func TestScan_OSFileSystem(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hazardous names cannot be created on Windows")
	}
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".stfolder"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	for _, name := range []string{"A.txt", "sub/a+b.txt", "sub/x.sync-conflict-1.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o644))
	}

	s := NewScanner(logging.NewNullLogger())
	folder := stguard.SynchronizedFolder{Path: root}
	first := slices.Collect(s.Scan(folder))
	second := slices.Collect(s.Scan(folder))

	assert.Equal(t, []string{
		filepath.Join(root, "sub", "x.sync-conflict-1.txt"),
		filepath.Join(root, "sub", "a+b.txt"),
	}, paths(first))
	assert.Equal(t, first, second)
}

func TestNewScannerWithFS_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewScannerWithFS(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewScannerWithFS(filesystem.NewMemoryFileSystem("/"), nil) })
}
