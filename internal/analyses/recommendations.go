package analyses

import (
	"resume-matcher/internal/analyses/recommendations"
	"resume-matcher/internal/match/sections"
)

// Recommendation is an alias of the recommendations module type.
type Recommendation = recommendations.Recommendation

func buildRecommendations(results []sections.Result) []Recommendation {
	value := recommendations.Generate(results)
	if value == nil {
		return []Recommendation{}
	}
	return value
}
