// Package identity derives stable fingerprints for findings.
package identity

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/vvka-141/stguard/pkg/stguard"
)

// NamespaceFindingIdentity is the UUID namespace for finding fingerprints.
// It is derived from the string "stguard/finding-identity/v1" using UUID v5
// with the URL namespace, so anyone can recompute it independently.
var NamespaceFindingIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("stguard/finding-identity/v1"))

// FindingID returns a deterministic UUID v5 for f.
//
// The fingerprint covers the category and the path only:
//   - the same hazard at the same place keeps its ID across runs, so it can
//     be listed in an ignore rule;
//   - a name that is both a conflict copy and contains forbidden characters
//     gets one ID per category;
//   - the path is case-sensitive, since case is exactly what distinguishes
//     colliding names.
//
// Separators are normalized to forward slashes so that IDs computed on
// Windows and Unix agree for the same relative layout.
func FindingID(f stguard.Finding) uuid.UUID {
	return uuid.NewSHA1(NamespaceFindingIdentity, []byte(canonical(f)))
}

// canonical builds the hashed input: category, a NUL separator, then the path.
func canonical(f stguard.Finding) string {
	return string(f.Category) + "\x00" + filepath.ToSlash(f.Path)
}

// Parse parses a finding ID as written in configuration files.
func Parse(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
