package parser

import "path"

// Blacklist is an immutable snapshot of the operator-maintained ignore
// patterns, taken once at the start of an import run. Patterns use glob
// syntax (`*` any run, `?` one character), are case-sensitive and must
// match the whole row label, not a substring.
type Blacklist struct {
	patterns []string
}

// NewBlacklist copies the pattern snapshot.
func NewBlacklist(patterns []string) *Blacklist {
	b := &Blacklist{patterns: make([]string, len(patterns))}
	copy(b.patterns, patterns)
	return b
}

// Matches reports whether value matches any blacklist pattern.
// Malformed patterns never match.
func (b *Blacklist) Matches(value string) bool {
	for _, pattern := range b.patterns {
		if ok, err := path.Match(pattern, value); err == nil && ok {
			return true
		}
	}
	return false
}

// Len returns the number of patterns in the snapshot.
func (b *Blacklist) Len() int {
	return len(b.patterns)
}
