package features

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// NormalizeSkill lowercases name and maps known aliases to their canonical
// spelling. Applying it twice returns the same value as applying it once.
func NormalizeSkill(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := synonyms[n]; ok {
		return canonical
	}
	return n
}

// ExtractTechnologies returns the technologies mentioned in text.
func ExtractTechnologies(text string) SkillSet {
	flat := Flatten(text)
	out := make(SkillSet)
	if flat == "" {
		return out
	}
	for _, tech := range technologies {
		if strict, ok := strictTerms[tech]; ok {
			if strict.foundIn(text) {
				out[tech] = struct{}{}
			}
			continue
		}
		if ContainsTerm(flat, tech) {
			out[NormalizeSkill(tech)] = struct{}{}
		}
	}
	for _, alias := range detectableAliases {
		if ContainsTerm(flat, alias) {
			out[NormalizeSkill(alias)] = struct{}{}
		}
	}
	return out
}

type strictTerm struct {
	spelling string
	phrasal  []string
}

// joiners glue a term into a larger word when written right next to it.
const joiners = "&-"

func (t strictTerm) foundIn(text string) bool {
	collapsed := strings.Join(strings.Fields(text), " ")
	offset := 0
	for offset < len(collapsed) {
		i := IndexTerm(collapsed[offset:], t.spelling)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(t.spelling)
		if !joined(collapsed[:start], collapsed[end:]) && !t.startsPhrase(collapsed[end:]) {
			return true
		}
		offset = end
	}
	return false
}

func joined(before, after string) bool {
	prev, _ := utf8.DecodeLastRuneInString(before)
	next, _ := utf8.DecodeRuneInString(after)
	if strings.ContainsRune(joiners, prev) || strings.ContainsRune(joiners, next) {
		return true
	}
	// "R & D"
	prev, _ = utf8.DecodeLastRuneInString(strings.TrimRight(before, " "))
	next, _ = utf8.DecodeRuneInString(strings.TrimLeft(after, " "))
	return prev == '&' || next == '&'
}

func (t strictTerm) startsPhrase(after string) bool {
	if !strings.HasPrefix(after, " ") {
		return false
	}
	words := strings.Fields(after)
	return len(words) > 0 && slices.Contains(t.phrasal, strings.ToLower(words[0]))
}

// ExtractSoftSkills returns the soft skills mentioned in text.
func ExtractSoftSkills(text string) SkillSet {
	flat := Flatten(text)
	out := make(SkillSet)
	if flat == "" {
		return out
	}
	for _, skill := range softSkills {
		if ContainsTerm(flat, skill) {
			out[skill] = struct{}{}
		}
	}
	return out
}

// ExtractSkills returns the union of technologies and soft skills in text.
func ExtractSkills(text string) SkillSet {
	return ExtractTechnologies(text).Union(ExtractSoftSkills(text))
}

// IsTechnology reports whether name is a canonical technology.
func IsTechnology(name string) bool {
	_, ok := technologySet[NormalizeSkill(name)]
	return ok
}

// IsSoftSkill reports whether name is a known soft skill.
func IsSoftSkill(name string) bool {
	_, ok := softSkillSet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
