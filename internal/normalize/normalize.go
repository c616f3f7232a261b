// Package normalize provides deterministic text canonicalization and
// tokenization for lexical matching. Query text and stored questions are
// normalized independently, so both must land in the same canonical space.
package normalize

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, drops every rune that is not an ASCII letter,
// ASCII digit, or whitespace, and collapses whitespace runs into single
// spaces. The result has no leading or trailing space. Normalize is pure,
// total, and idempotent; non-ASCII letters are deliberately discarded.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	pendingSpace := false
	for _, r := range lower {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// Tokenize normalizes text and splits it on whitespace.
// Empty or normalized-to-empty input yields an empty slice.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

// WordCount returns the number of tokens in text after normalization.
func WordCount(text string) int {
	return len(Tokenize(text))
}

// TokenSet returns the unique tokens of text as a set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
