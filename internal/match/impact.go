package match

import (
	"math"

	"resume-matcher/internal/match/sections"
)

// ImpactPoint is one bar pair of the section impact chart.
type ImpactPoint struct {
	Section  string `json:"section"`
	Current  int    `json:"current"`
	Expected int    `json:"expected"`
}

var impactOrder = []string{
	sections.TitleSkills,
	sections.TitleEducation,
	sections.TitleExperience,
	sections.TitleLocation,
	sections.TitleKeywords,
	sections.TitleProjects,
}

var statusScores = map[sections.Status]float64{
	sections.StatusMissing: 45,
	sections.StatusWeak:    65,
	sections.StatusGood:    90,
}

const (
	impactMax   = 95
	impactBoost = 15
)

// SectionImpact turns section results into current and expected per-section
// scores for charting. Sections absent from results are skipped.
func SectionImpact(results []sections.Result) []ImpactPoint {
	byTitle := make(map[string]sections.Result, len(results))
	for _, r := range results {
		byTitle[r.Title] = r
	}
	var out []ImpactPoint
	for _, title := range impactOrder {
		r, ok := byTitle[title]
		if !ok {
			continue
		}
		current := int(math.Round(sectionScore(r)))
		expected := current
		if r.Status != sections.StatusGood {
			expected = min(impactMax, current+impactBoost)
		}
		out = append(out, ImpactPoint{Section: title, Current: current, Expected: expected})
	}
	return out
}

func sectionScore(r sections.Result) float64 {
	switch r.Title {
	case sections.TitleSkills:
		ratio := 0.0
		if r.Metadata.MatchRatio != nil {
			ratio = *r.Metadata.MatchRatio
		}
		return math.Min(impactMax, 40+ratio*55)
	case sections.TitleProjects:
		count, ratio := 0.0, 0.0
		if r.Metadata.ProjectCount != nil {
			count = float64(*r.Metadata.ProjectCount)
		}
		if r.Metadata.RelevantProjectRatio != nil {
			ratio = *r.Metadata.RelevantProjectRatio
		}
		return math.Min(impactMax, 50+count*10+ratio*30)
	default:
		return statusScores[r.Status]
	}
}
