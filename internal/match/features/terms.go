package features

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Flatten lowercases text and collapses every whitespace run to one space so
// multi-word terms match across line breaks.
func Flatten(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ContainsTerm reports whether term occurs in text as a whole word. Both
// arguments are expected in lowercase. A hit is rejected when the rune
// directly before or after it is a letter or digit, so "java" does not match
// inside "javascript" while "c++" and "node.js" still match.
func ContainsTerm(text, term string) bool {
	return IndexTerm(text, term) >= 0
}

// IndexTerm returns the byte offset of the first whole-word occurrence of
// term in text, or -1.
func IndexTerm(text, term string) int {
	if term == "" {
		return -1
	}
	offset := 0
	for offset <= len(text) {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return start
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return -1
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SkillSet is a set of normalized skill names.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from names, normalizing each one.
func NewSkillSet(names ...string) SkillSet {
	s := make(SkillSet, len(names))
	for _, n := range names {
		if n = NormalizeSkill(n); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Has reports whether name (after normalization) is in the set.
func (s SkillSet) Has(name string) bool {
	_, ok := s[NormalizeSkill(name)]
	return ok
}

// Len returns the set size.
func (s SkillSet) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Intersect returns members present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for k := range s {
		if _, ok := other[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// Minus returns members of s that are not in other.
func (s SkillSet) Minus(other SkillSet) SkillSet {
	out := make(SkillSet)
	for k := range s {
		if _, ok := other[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// Union returns members present in either set.
func (s SkillSet) Union(other SkillSet) SkillSet {
	out := make(SkillSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// OrderByAppearance sorts names by where they first appear in text, with
// technologies ahead of soft skills. Names that never appear (for example a
// canonical name reached only through an alias) go last, alphabetically.
func OrderByAppearance(text string, names []string) []string {
	flat := Flatten(text)
	type ranked struct {
		name string
		tech bool
		pos  int
	}
	items := make([]ranked, 0, len(names))
	for _, n := range names {
		_, tech := technologySet[n]
		items = append(items, ranked{name: n, tech: tech, pos: firstMention(flat, n)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.tech != b.tech {
			return a.tech
		}
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		return a.name < b.name
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

func firstMention(flat, name string) int {
	best := IndexTerm(flat, name)
	for alias, canonical := range synonyms {
		if canonical != name {
			continue
		}
		if i := IndexTerm(flat, alias); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	if best < 0 {
		return int(^uint(0) >> 1)
	}
	return best
}

// KeywordTokens splits text on whitespace and returns the lowercase words
// with surrounding punctuation trimmed, so "ci/cd," and "testing." count as
// "ci/cd" and "testing".
func KeywordTokens(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, `.,;:!?()[]{}"'`)
		if w != "" {
			out[w] = struct{}{}
		}
	}
	return out
}
