package services

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text into a comparable search key: lower-cased,
// letters/digits/whitespace only, runs of whitespace collapsed to one space.
// Applying it twice gives the same result, so stored keys and query keys can
// both be passed through it safely.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
