// Package tokenizer splits normalised text into word tokens.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits text on runs of white space and returns the non-empty
// fragments in document order. The ASCII information separators U+001C to
// U+001F count as white space as well.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
