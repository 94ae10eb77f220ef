package features

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const educationWindow = 600

// EducationRule locates the start of an education block. When AfterMatch is
// set the block begins right after the matched header; otherwise it begins at
// the start of the line holding the match so the qualifying phrase is kept.
type EducationRule struct {
	Name       string
	Pattern    *regexp.Regexp
	AfterMatch bool
}

// EducationRules is evaluated in order; the first rule that matches wins.
var EducationRules = []EducationRule{
	{
		Name:       "education-header",
		Pattern:    regexp.MustCompile(`(?m)^[ \t#*•-]*(?:education|educational\s+(?:background|qualifications?)|academic\s+(?:background|qualifications?|details)|academics)[ \t]*:?[ \t*]*$`),
		AfterMatch: true,
	},
	{
		Name:       "education-inline",
		Pattern:    regexp.MustCompile(`\beducation\s*:`),
		AfterMatch: true,
	},
	{Name: "qualifications", Pattern: regexp.MustCompile(`\bqualifications?\b`)},
	{Name: "academic", Pattern: regexp.MustCompile(`\bacademic\b`)},
	{Name: "degree", Pattern: regexp.MustCompile(`\bdegree\b`)},
	{Name: "degree-name", Pattern: regexp.MustCompile(`\b(?:bachelor|master|ph\.?d|b\.tech|m\.tech|b\.sc|m\.sc|bsc|msc|mba|bca|mca)`)},
}

// ExtractEducation returns the text of the education block, bounded by the
// next recognised section header or a fixed window, or "" when no rule fires.
func ExtractEducation(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range EducationRules {
		loc := rule.Pattern.FindStringIndex(lower)
		if loc == nil {
			continue
		}
		span := educationSpan(lower, loc, rule.AfterMatch)
		if span != "" {
			return span
		}
	}
	return ""
}

func educationSpan(lower string, loc []int, afterMatch bool) string {
	lines, offsets := splitLines(lower)
	first := lineIndexAt(offsets, loc[0])
	start := offsets[first]
	if afterMatch {
		start = loc[1]
	}
	end := len(lower)
	for i := first + 1; i < len(lines); i++ {
		name, _, ok := sectionHeader(lines[i])
		if ok && name != "education" && name != "qualifications" {
			end = offsets[i]
			break
		}
	}
	if end-start > educationWindow {
		end = start + educationWindow
		for end > start && !utf8.RuneStart(lower[end]) {
			end--
		}
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(lower[start:end])
}

// EducationKeywordsIn returns the education vocabulary entries found in span,
// in vocabulary order.
func EducationKeywordsIn(span string) []string {
	return keywordsIn(span, educationKeywords)
}

// DegreeKeywordsIn returns the credential keywords found in text.
func DegreeKeywordsIn(text string) []string {
	return keywordsIn(text, degreeKeywords)
}

func keywordsIn(text string, vocab []string) []string {
	flat := Flatten(text)
	if flat == "" {
		return nil
	}
	var out []string
	for _, kw := range vocab {
		if ContainsTerm(flat, kw) {
			out = append(out, kw)
		}
	}
	return out
}
