// Package textmodel turns items into token streams for the similarity
// engine and theme scoring.
package textmodel

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text, treats every non-alphanumeric rune as a
// separator and drops tokens of two characters or fewer.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}

// TokenizeFiltered is Tokenize without stop words.
func TokenizeFiltered(text string) []string {
	toks := Tokenize(text)
	out := toks[:0]
	for _, t := range toks {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}
