package hazard

import "strings"

// androidForbidden are characters rejected by Android's FAT/sdcardfs-backed
// storage and by Windows. ':' and '?' in particular break inbound sync to
// Android devices during temporary file creation.
const androidForbidden = `|\?*<":>+[]/'`

// miscForbidden are extra exclusions: '·' trips up some Android/Windows
// setups and '^' is awkward on Windows.
const miscForbidden = "·^"

const forbidden = androidForbidden + miscForbidden

// ForbiddenCharacters returns the forbidden characters in canonical order.
// The returned slice is a copy.
func ForbiddenCharacters() []rune {
	return []rune(forbidden)
}

// IsForbidden reports whether r is a forbidden character.
func IsForbidden(r rune) bool {
	return strings.ContainsRune(forbidden, r)
}

// ForbiddenIn returns the forbidden characters present in name, each once,
// in canonical order. It returns nil when name is clean.
func ForbiddenIn(name string) []rune {
	if strings.IndexFunc(name, IsForbidden) < 0 {
		return nil
	}
	var found []rune
	for _, c := range ForbiddenCharacters() {
		if strings.ContainsRune(name, c) {
			found = append(found, c)
		}
	}
	return found
}
