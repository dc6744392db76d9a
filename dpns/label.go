// Package dpns implements the pure normalization and contention rules
// for DPNS usernames, independent of the network calls that check
// availability or register a name (see platformdriver.DPNS).
package dpns

import "strings"

// NormalizeLabel lowercases label and folds the visually-ambiguous
// characters 'o', 'i', 'l' to '0' and '1' respectively, matching how
// the network resolves homoglyph collisions between names.
func NormalizeLabel(label string) string {
	lower := strings.ToLower(label)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch r {
		case 'o':
			b.WriteRune('0')
		case 'i', 'l':
			b.WriteRune('1')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsContested reports whether label falls into the contested-name
// range: normalized length between 3 and 19 inclusive, consisting only
// of lowercase letters, digits, and hyphens, and containing no digit
// in the 2-9 range (those digits are reserved for uncontested,
// auction-free registration).
func IsContested(label string) bool {
	normalized := NormalizeLabel(label)
	if len(normalized) < 3 || len(normalized) > 19 {
		return false
	}
	for _, r := range normalized {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '0' || r == '1':
		case r == '-':
		case r >= '2' && r <= '9':
			return false
		default:
			return false
		}
	}
	return true
}
