// Package suppress removes known and accepted findings from a scan.
//
// Filter is the lazy combinator used by the auditor. RuleSet is the
// predicate built from the ignore rules of the configuration file.
package suppress

import (
	"iter"

	"github.com/vvka-141/stguard/pkg/stguard"
)

// Never suppresses nothing.
var Never stguard.Suppressor = stguard.SuppressFunc(func(stguard.Finding) bool { return false })

// Filter yields the findings of seq that s does not suppress, in order.
// A nil s behaves like Never.
func Filter(seq iter.Seq[stguard.Finding], s stguard.Suppressor) iter.Seq[stguard.Finding] {
	if s == nil {
		s = Never
	}
	return func(yield func(stguard.Finding) bool) {
		for f := range seq {
			if s.Suppress(f) {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Partition is like Filter but also reports every suppressed finding to
// onSuppressed.
func Partition(seq iter.Seq[stguard.Finding], s stguard.Suppressor, onSuppressed func(stguard.Finding)) iter.Seq[stguard.Finding] {
	if onSuppressed == nil {
		return Filter(seq, s)
	}
	if s == nil {
		s = Never
	}
	return func(yield func(stguard.Finding) bool) {
		for f := range seq {
			if s.Suppress(f) {
				onSuppressed(f)
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}
