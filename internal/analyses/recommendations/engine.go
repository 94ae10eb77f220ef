package recommendations

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"resume-matcher/internal/match/sections"
)

// Generate builds deterministic recommendations from section results:
// missing sections rank before weak ones and at most MaxRecommendations are
// returned, numbered from 1.
func Generate(results []sections.Result) []Recommendation {
	candidates := make([]Recommendation, 0, 16)
	mappers := []func([]sections.Result) []Recommendation{
		fromSections,
		fromSkillGroups,
		fromKeywordExamples,
	}
	for _, mapper := range mappers {
		candidates = append(candidates, mapper(results)...)
	}

	deduped := dedupe(candidates)
	sortRecommendations(deduped)
	if len(deduped) > MaxRecommendations {
		deduped = deduped[:MaxRecommendations]
	}
	for i := range deduped {
		deduped[i].Order = i + 1
	}
	return deduped
}

// Higher ranks sort first. Unknown values rank lowest.
var (
	severityRanks = map[string]int{SeverityCritical: 3, SeverityWarning: 2, SeverityInfo: 1}
	impactRanks   = map[string]int{"high": 3, "medium": 2, "low": 1}
	categoryRanks = map[string]int{
		"SKILLS":     6,
		"KEYWORDS":   5,
		"EXPERIENCE": 4,
		"PROJECTS":   3,
		"EDUCATION":  2,
		"LOCATION":   1,
	}
)

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

// dedupe keeps the first recommendation per ID, filling its empty fields
// from later duplicates.
func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[string]int, len(items))
	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if idx, ok := seen[id]; ok {
			out[idx] = mergeRecommendation(out[idx], item)
			continue
		}
		seen[id] = len(out)
		out = append(out, item)
	}
	return out
}

func mergeRecommendation(a, b Recommendation) Recommendation {
	if a.Title == "" {
		a.Title = b.Title
	}
	if a.Why == "" {
		a.Why = b.Why
	}
	if a.Action == "" {
		a.Action = b.Action
	}
	if severityRanks[b.Severity] > severityRanks[a.Severity] {
		a.Severity = b.Severity
	}
	if impactRanks[b.Impact] > impactRanks[a.Impact] {
		a.Impact = b.Impact
	}
	if len(a.Terms) == 0 {
		a.Terms = b.Terms
	}
	return a
}

// sortRecommendations orders by severity, impact and category (all
// descending), then case-insensitive title and ID.
func sortRecommendations(items []Recommendation) {
	slices.SortStableFunc(items, func(a, b Recommendation) int {
		return cmp.Or(
			cmp.Compare(severityRanks[b.Severity], severityRanks[a.Severity]),
			cmp.Compare(impactRanks[b.Impact], impactRanks[a.Impact]),
			cmp.Compare(categoryRanks[b.Category], categoryRanks[a.Category]),
			strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			strings.Compare(a.ID, b.ID),
		)
	})
}
