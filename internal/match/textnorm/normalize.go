// Package textnorm turns raw resume and job description text into the
// lowercase, stopword-free token stream used for lexical similarity.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text, folds accents, replaces every rune outside the
// allow-list with a space, collapses whitespace and drops stopwords.
// The same input always produces the same output; empty input yields "".
func Normalize(text string) string {
	return strings.Join(Tokens(text), " ")
}

// Tokens returns the normalized tokens of text in document order.
func Tokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	filtered := strings.Map(keepRune, strings.ToLower(Fold(text)))
	fields := strings.Fields(filtered)
	out := fields[:0]
	for _, f := range fields {
		if IsStopword(f) {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Fold strips combining marks so "résumé" and "resume" compare equal.
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

func keepRune(r rune) rune {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
		return r
	case unicode.IsSpace(r):
		return ' '
	}
	switch r {
	case '@', '+', '-', '.', '#', '/':
		return r
	}
	return ' '
}
