// Package projection estimates the score a resume could reach once its weak
// and missing sections are fixed.
package projection

import (
	"math"

	"resume-matcher/internal/match/sections"
)

// Projector holds the point values used to project an improved score.
type Projector struct {
	MissingPoints  float64
	WeakPoints     float64
	MaxImprovement float64
	Ceiling        float64
}

// Default returns the standard projector: 8 points per missing section, 4
// per weak one, at most 25 points in total and never above 98.
func Default() Projector {
	return Projector{MissingPoints: 8, WeakPoints: 4, MaxImprovement: 25, Ceiling: 98}
}

// Gain is the capped number of points the sections could add.
func (p Projector) Gain(results []sections.Result) float64 {
	gain := 0.0
	for _, r := range results {
		switch r.Status {
		case sections.StatusMissing:
			gain += p.MissingPoints
		case sections.StatusWeak:
			gain += p.WeakPoints
		}
	}
	return math.Min(gain, p.MaxImprovement)
}

// Project returns the expected score after improvements and the gain that
// produced it. The expected score is rounded to two decimals, capped at the
// ceiling and never below current.
func (p Projector) Project(current float64, results []sections.Result) (expected, gain float64) {
	gain = p.Gain(results)
	expected = math.Round(math.Min(current+gain, p.Ceiling)*100) / 100
	return math.Max(current, expected), gain
}
