package stguard

import (
	"context"
	"iter"
)

// Searcher runs the external fast-file-search tool and returns its raw stdout.
type Searcher interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// FolderLocator discovers synchronized folders beneath a search root.
type FolderLocator interface {
	Locate(ctx context.Context, root string) ([]SynchronizedFolder, error)
}

// TreeScanner walks one synchronized folder and yields its findings lazily.
// Every call to Scan returns a sequence that re-walks the tree.
type TreeScanner interface {
	Scan(folder SynchronizedFolder) iter.Seq[Finding]
}

// Suppressor decides whether a finding is known and accepted.
// Implementations must be pure: the same finding always gets the same answer.
type Suppressor interface {
	Suppress(f Finding) bool
}

// SuppressFunc adapts an ordinary function to the Suppressor interface.
type SuppressFunc func(f Finding) bool

// Suppress calls fn(f).
func (fn SuppressFunc) Suppress(f Finding) bool {
	return fn(f)
}

// Reporter receives every unsuppressed finding of a run.
type Reporter interface {
	// Record is called once per finding, in discovery order.
	Record(f Finding) error

	// Flush is called once after the last root was processed.
	Flush() error
}
