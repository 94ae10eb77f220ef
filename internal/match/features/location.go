package features

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LocationMention is a place name pulled out of free text and the rule that
// produced it.
type LocationMention struct {
	Text string
	Rule string
}

// Tokens returns the lowercase words of the mention, punctuation stripped.
func (l LocationMention) Tokens() []string {
	return locationTokens(l.Text)
}

// Overlaps reports whether any word of l appears among the words of other.
func (l LocationMention) Overlaps(other LocationMention) bool {
	theirs := make(map[string]struct{})
	for _, t := range other.Tokens() {
		theirs[t] = struct{}{}
	}
	for _, t := range l.Tokens() {
		if _, ok := theirs[t]; ok {
			return true
		}
	}
	return false
}

func locationTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '|' || r == '.' || r == '-' || r == '(' || r == ')'
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) < 2 || locationFiller[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// LocationRule extracts a mention or reports no match.
type LocationRule struct {
	Name    string
	Extract func(text string) (string, bool)
}

// LocationRules is evaluated in order; the first rule that yields a mention wins.
var LocationRules = []LocationRule{
	{Name: "marker", Extract: markerLocation},
	{Name: "city-region", Extract: cityRegionLocation},
	{Name: "gazetteer", Extract: gazetteerLocation},
}

// ExtractLocation returns the first location mention found in text.
func ExtractLocation(text string) (LocationMention, bool) {
	if strings.TrimSpace(text) == "" {
		return LocationMention{}, false
	}
	for _, rule := range LocationRules {
		if loc, ok := rule.Extract(text); ok {
			return LocationMention{Text: loc, Rule: rule.Name}, true
		}
	}
	return LocationMention{}, false
}

var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`location\s*:\s*([a-z][a-z ,]+?)\s*(?:\n|$|\||•|based|\()`),
	regexp.MustCompile(`based\s+(?:in|at|out\s+of)\s+([a-z][a-z ,]+?)\s*(?:\n|$|\.|\||;|\()`),
	regexp.MustCompile(`offices?\s+(?:in|at)\s+([a-z][a-z ,]+?)\s*(?:\n|$|\.|\||;|\()`),
	regexp.MustCompile(`work\s+(?:from|in)\s+([a-z][a-z ,]+?)\s*(?:\n|$|\.|\||;|\()`),
}

var markerFillerRe = regexp.MustCompile(`\b(?:the|a|an|in|at|of|for|to|and|or|is|are|with)\b`)

var markerRejectTerms = []string{"developer", "engineer", "software", "quality", "devops", "home"}

var locationFiller = map[string]bool{
	"the": true, "in": true, "at": true, "of": true, "and": true, "or": true,
}

// titleCase builds a fresh Caser per call; Casers carry state and must not
// be shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func markerLocation(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, re := range markerPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		loc := markerFillerRe.ReplaceAllString(m[1], "")
		loc = strings.Join(strings.Fields(loc), " ")
		loc = strings.Trim(loc, " ,")
		if len(loc) <= 2 || len(loc) >= 40 || containsAny(loc, markerRejectTerms) {
			continue
		}
		return titleCase(loc), true
	}
	return "", false
}

var cityRegionRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*),[ \t]*([A-Z]{2,}|[A-Z][a-z]+)\b`)

var companySuffixes = []string{
	"ltd", "inc", "llc", "pvt", "private", "limited", "corporation",
	"technologies", "solutions", "systems",
}

func cityRegionLocation(text string) (string, bool) {
	for _, m := range cityRegionRe.FindAllStringSubmatch(text, -1) {
		city, region := m[1], m[2]
		combined := strings.ToLower(city + " " + region)
		if containsAny(combined, companySuffixes) {
			continue
		}
		if looksLikeVocabulary(city) || looksLikeVocabulary(region) {
			continue
		}
		return city + ", " + region, true
	}
	return "", false
}

// looksLikeVocabulary rejects "Python, Django" style skill lists that share
// the capitalised "City, Region" shape.
func looksLikeVocabulary(part string) bool {
	for _, w := range strings.Fields(strings.ToLower(part)) {
		n := NormalizeSkill(w)
		if IsTechnology(n) || IsSoftSkill(n) || sectionHeaderRe.MatchString(n) {
			return true
		}
	}
	return false
}

func gazetteerLocation(text string) (string, bool) {
	flat := Flatten(text)
	for _, place := range Gazetteer() {
		if ContainsTerm(flat, place) {
			return titleCase(place), true
		}
	}
	return "", false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
