// Package normalizer prepares document text for tokenisation by deleting
// ASCII punctuation and lower-casing what remains.
package normalizer

import (
	"strings"
	"unicode"
)

// Punctuation is the ASCII punctuation set removed by Normalize.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var isPunct [128]bool

func init() {
	for i := 0; i < len(Punctuation); i++ {
		isPunct[Punctuation[i]] = true
	}
}

// Normalize deletes every ASCII punctuation character (without inserting a
// space, so "well-known" becomes "wellknown") and lower-cases every other
// rune. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 128 && isPunct[r] {
			return -1
		}
		return unicode.ToLower(r)
	}, text)
}
