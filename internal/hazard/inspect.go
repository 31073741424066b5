// Package hazard detects names that break synchronization across platforms.
//
// Inspect looks at the entries of a single directory level. Each of the
// three checks is independent, so one name can produce several findings.
package hazard

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vvka-141/stguard/pkg/stguard"
)

const (
	detailSyncConflict  = "unresolved Syncthing conflict copy"
	detailCaseCollision = "names differ only by case; case-insensitive filesystems will clash"
	detailForbidden     = "name contains characters unsafe on Windows/Android"
)

// JoinFunc joins a directory path and an entry name.
type JoinFunc func(elem ...string) string

// Inspect returns the findings for one directory level: every sync-conflict
// finding first, then case collisions, then forbidden characters.
func Inspect(dir string, names []string, join JoinFunc) []stguard.Finding {
	var findings []stguard.Finding
	findings = append(findings, SyncConflicts(dir, names, join)...)
	findings = append(findings, CaseCollisions(dir, names, join)...)
	findings = append(findings, ForbiddenNames(dir, names, join)...)
	return findings
}

// SyncConflicts reports every name that contains the conflict marker.
func SyncConflicts(dir string, names []string, join JoinFunc) []stguard.Finding {
	var findings []stguard.Finding
	for _, name := range names {
		if strings.Contains(name, stguard.ConflictMarker) {
			findings = append(findings, stguard.Finding{
				Path:     join(dir, name),
				Category: stguard.CategorySyncConflict,
				Detail:   detailSyncConflict,
			})
		}
	}
	return findings
}

// CaseCollisions reports one finding per group of names that are equal
// after lowercasing with foldCase. The finding path ends in the lowercased
// key. Groups are reported in order of their first member.
func CaseCollisions(dir string, names []string, join JoinFunc) []stguard.Finding {
	counts := make(map[string]int, len(names))
	var order []string
	for _, name := range names {
		key := foldCase(name)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	var findings []stguard.Finding
	for _, key := range order {
		if counts[key] > 1 {
			findings = append(findings, stguard.Finding{
				Path:     join(dir, key),
				Category: stguard.CategoryCaseCollision,
				Detail:   detailCaseCollision,
			})
		}
	}
	return findings
}

// ForbiddenNames reports every name containing forbidden characters,
// listing exactly the characters found.
func ForbiddenNames(dir string, names []string, join JoinFunc) []stguard.Finding {
	var findings []stguard.Finding
	for _, name := range names {
		chars := ForbiddenIn(name)
		if chars == nil {
			continue
		}
		findings = append(findings, stguard.Finding{
			Path:     join(dir, name),
			Category: stguard.CategoryForbiddenCharacters,
			Detail:   detailForbidden,
			Chars:    chars,
		})
	}
	return findings
}

// foldCase lowercases the valid runes of name and copies bytes that are not
// valid UTF-8 through unchanged, so distinct undecodable names keep
// distinct keys.
func foldCase(name string) string {
	if utf8.ValidString(name) {
		return strings.ToLower(name)
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(name[i])
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		i += size
	}
	return b.String()
}
