// Package slug turns human-readable names into URL-safe identifiers.
//
// Uniqueness is advisory here: callers do a prefix check against existing
// rows and fall back to MakeUnique on collision, but the unique index on the
// slug column is the real guarantee.
package slug

import (
	"math/rand"
	"strings"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

const tokenLength = 6

// Make normalizes name into a base slug: lowercased, with every run of
// non-alphanumeric characters collapsed into a single dash.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// MakeUnique appends a short random token to the base slug so two entities
// with colliding names end up with distinct slugs.
func MakeUnique(name string) string {
	base := Make(name)
	token := make([]byte, tokenLength)
	for i := range token {
		token[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	if base == "" {
		return string(token)
	}
	return base + "-" + string(token)
}
