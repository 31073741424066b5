package suppress

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/stguard/internal/config"
	"github.com/vvka-141/stguard/internal/identity"
	"github.com/vvka-141/stguard/pkg/stguard"
)

// rule is a compiled config.IgnoreRule. Zero-valued fields match anything.
type rule struct {
	id         uuid.UUID
	category   stguard.Category
	glob       string
	under      string
	regex      *regexp.Regexp
	allowChars string
}

// RuleSet suppresses a finding when any of its rules matches.
// It implements stguard.Suppressor and is safe for concurrent use.
type RuleSet struct {
	rules []rule
}

// NewRuleSet compiles and validates rules. Errors wrap stguard.ErrInvalidConfig
// and name the offending rule by index.
func NewRuleSet(rules []config.IgnoreRule) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]rule, 0, len(rules))}
	for i, r := range rules {
		compiled, err := compile(r)
		if err != nil {
			return nil, fmt.Errorf("%w: ignore[%d]: %w", stguard.ErrInvalidConfig, i, err)
		}
		rs.rules = append(rs.rules, compiled)
	}
	return rs, nil
}

func compile(r config.IgnoreRule) (rule, error) {
	if r.IsEmpty() {
		return rule{}, errors.New("rule has no fields")
	}

	var c rule
	if r.ID != "" {
		id, err := identity.Parse(r.ID)
		if err != nil {
			return rule{}, fmt.Errorf("id %q: %w", r.ID, err)
		}
		c.id = id
	}
	if r.Category != "" {
		c.category = stguard.Category(r.Category)
		if !c.category.Valid() {
			return rule{}, fmt.Errorf("unknown category %q (want one of %s)", r.Category, categoryList())
		}
	}
	if r.Path != "" {
		if _, err := filepath.Match(r.Path, ""); err != nil {
			return rule{}, fmt.Errorf("path %q: %w", r.Path, err)
		}
		c.glob = r.Path
	}
	if r.Under != "" {
		c.under = filepath.Clean(r.Under)
	}
	if r.Regex != "" {
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			return rule{}, fmt.Errorf("regex: %w", err)
		}
		c.regex = re
	}
	c.allowChars = r.AllowChars
	return c, nil
}

func categoryList() string {
	names := make([]string, 0, len(stguard.Categories()))
	for _, c := range stguard.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Suppress implements stguard.Suppressor.
func (rs *RuleSet) Suppress(f stguard.Finding) bool {
	return slices.ContainsFunc(rs.rules, func(r rule) bool { return r.matches(f) })
}

func (r rule) matches(f stguard.Finding) bool {
	if r.id != uuid.Nil && identity.FindingID(f) != r.id {
		return false
	}
	if r.category != "" && f.Category != r.category {
		return false
	}
	if r.glob != "" {
		if ok, _ := filepath.Match(r.glob, f.Path); !ok {
			return false
		}
	}
	if r.under != "" && !isUnder(f.Path, r.under) {
		return false
	}
	if r.regex != nil && !r.regex.MatchString(f.Path) {
		return false
	}
	if r.allowChars != "" {
		if f.Category != stguard.CategoryForbiddenCharacters {
			return false
		}
		for _, c := range f.Chars {
			if !strings.ContainsRune(r.allowChars, c) {
				return false
			}
		}
	}
	return true
}

// isUnder reports whether p equals dir or lies inside it.
func isUnder(p, dir string) bool {
	p = filepath.Clean(p)
	if p == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(p, dir)
}
