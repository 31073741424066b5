package stguard

import (
	"fmt"
	"slices"
	"strings"
)

// Category classifies a Finding.
type Category string

const (
	// CategorySyncConflict marks a conflict copy left behind by Syncthing.
	CategorySyncConflict Category = "sync-conflict"

	// CategoryCaseCollision marks sibling names that differ only by letter case.
	CategoryCaseCollision Category = "case-collision"

	// CategoryForbiddenCharacters marks a name containing characters that
	// Windows or Android filesystems reject.
	CategoryForbiddenCharacters Category = "forbidden-characters"
)

// Categories lists every category in reporting order.
func Categories() []Category {
	return []Category{CategorySyncConflict, CategoryCaseCollision, CategoryForbiddenCharacters}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// Finding is a hazard observed while scanning a synchronized folder.
// Findings are values: they are never modified after the scanner creates them.
type Finding struct {
	// Path identifies where the hazard was observed.
	Path string

	// Category is the kind of hazard.
	Category Category

	// Detail is a human-readable description.
	Detail string

	// Chars holds the offending characters of a forbidden-characters
	// finding, in forbidden-set order. Nil for other categories.
	Chars []rune
}

// String renders the finding as a single line.
func (f Finding) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", f.Path, f.Category, f.Detail)
	if len(f.Chars) > 0 {
		b.WriteString(" ")
		b.WriteString(FormatChars(f.Chars))
	}
	return b.String()
}

// FormatChars renders a character set as {'a', 'b'}.
func FormatChars(chars []rune) string {
	quoted := make([]string, len(chars))
	for i, c := range chars {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// SynchronizedFolder is the root of a directory tree managed by Syncthing,
// identified as the parent of a MarkerDirName directory.
type SynchronizedFolder struct {
	Path string
}

// AuditSummary describes a completed audit run.
type AuditSummary struct {
	// Roots is the number of search roots processed.
	Roots int

	// Folders is the number of synchronized folders scanned.
	Folders int

	// Suppressed is the number of findings dropped by the suppressor.
	Suppressed int

	// Findings holds every unsuppressed finding in discovery order.
	Findings []Finding
}

// Passed reports whether the run found nothing worth reporting.
func (s AuditSummary) Passed() bool {
	return len(s.Findings) == 0
}
