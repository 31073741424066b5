// Package locator finds Syncthing folders by searching for their marker
// directories with fd.
package locator

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/vvka-141/stguard/pkg/stguard"
)

// markerPattern matches the marker directory name and nothing else.
var markerPattern = "^" + regexp.QuoteMeta(stguard.MarkerDirName) + "$"

// Locator implements stguard.FolderLocator on top of a stguard.Searcher.
type Locator struct {
	searcher stguard.Searcher
	logger   stguard.Logger
}

// NewLocator creates a Locator.
// Panics if searcher or logger is nil.
func NewLocator(searcher stguard.Searcher, logger stguard.Logger) *Locator {
	if searcher == nil {
		panic("searcher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Locator{searcher: searcher, logger: logger}
}

// SearchArgs returns the fd arguments used to find marker directories under root.
func SearchArgs(root string) []string {
	return []string{"--hidden", markerPattern, root, "--type", "d", "-0"}
}

// Locate returns the synchronized folders beneath root, in fd output order.
// A root without any marker directory yields an empty slice.
func (l *Locator) Locate(ctx context.Context, root string) ([]stguard.SynchronizedFolder, error) {
	out, err := l.searcher.Run(ctx, SearchArgs(root)...)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s for %s: %w", root, stguard.MarkerDirName, err)
	}

	paths, err := ParseNullDelimited(out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results for %s: %w", root, err)
	}

	folders := make([]stguard.SynchronizedFolder, 0, len(paths))
	for _, p := range paths {
		// fd 9+ prints directories with a trailing separator.
		marker := filepath.Clean(p)
		if filepath.Base(marker) != stguard.MarkerDirName {
			l.logger.Verbose("ignoring %s: not named exactly %s", p, stguard.MarkerDirName)
			continue
		}
		folders = append(folders, stguard.SynchronizedFolder{Path: filepath.Dir(marker)})
	}

	l.logger.Verbose("found %d synchronized folder(s) under %s", len(folders), root)
	return folders, nil
}

// ParseNullDelimited splits NUL-terminated fd output into paths.
// Every path must be followed by a NUL byte, so the final segment after the
// last separator must be empty. Empty output means no paths.
func ParseNullDelimited(out []byte) ([]string, error) {
	segments := bytes.Split(out, []byte{0})
	last := segments[len(segments)-1]
	if len(last) != 0 {
		return nil, fmt.Errorf("%w: output does not end with a NUL byte (trailing %q)",
			stguard.ErrMalformedToolOutput, last)
	}
	segments = segments[:len(segments)-1]

	paths := make([]string, len(segments))
	for i, seg := range segments {
		paths[i] = string(seg)
	}
	return paths, nil
}
