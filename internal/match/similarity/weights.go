// Package similarity computes the weighted match score between a resume and
// a job posting from four signals: lexical TF-IDF similarity, skill overlap,
// important-keyword overlap and section completeness.
package similarity

import (
	"fmt"
	"math"

	"resume-matcher/internal/match/features"
)

// Weights splits the final score across the four signals. They sum to 1.
type Weights struct {
	Lexical  float64 `json:"lexical"`
	Skills   float64 `json:"skills"`
	Keywords float64 `json:"keywords"`
	Sections float64 `json:"sections"`
}

const weightTolerance = 0.01

// Validate checks that every weight is non-negative and that they sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"lexical": w.Lexical, "skills": w.Skills, "keywords": w.Keywords, "sections": w.Sections,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative: %v", name, v)
		}
	}
	sum := w.Lexical + w.Skills + w.Keywords + w.Sections
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights sum to %.3f, want 1", sum)
	}
	return nil
}

var (
	frontendWeights = Weights{Lexical: 0.25, Skills: 0.45, Keywords: 0.20, Sections: 0.10}
	backendWeights  = Weights{Lexical: 0.35, Skills: 0.35, Keywords: 0.20, Sections: 0.10}
	defaultWeights  = Weights{Lexical: 0.30, Skills: 0.40, Keywords: 0.20, Sections: 0.10}
)

// WeightsFor returns the weight vector used for a job type. Frontend roles
// lean on skills, backend roles on lexical similarity; every other role gets
// the default split.
func WeightsFor(t features.JobType) Weights {
	switch t {
	case features.JobTypeFrontend:
		return frontendWeights
	case features.JobTypeBackend:
		return backendWeights
	default:
		return defaultWeights
	}
}
