// Package match ties the matching pipeline together: section analysis,
// similarity scoring and score projection for one resume and job posting.
package match

import (
	"math"
	"strings"

	"resume-matcher/internal/match/features"
	"resume-matcher/internal/match/projection"
	"resume-matcher/internal/match/sections"
	"resume-matcher/internal/match/similarity"
)

// Result is the full outcome of one analysis. ExpectedScore is never below
// CurrentScore and never above the projector ceiling.
type Result struct {
	CurrentScore  float64              `json:"currentScore"`
	ExpectedScore float64              `json:"expectedScore"`
	PotentialGain float64              `json:"potentialGain"`
	JobType       features.JobType     `json:"jobType"`
	Weights       similarity.Weights   `json:"weights"`
	Breakdown     similarity.Breakdown `json:"breakdown"`
	Sections      []sections.Result    `json:"sections"`
}

// Engine runs analyses. It keeps no state between calls and is safe for
// concurrent use as long as its ExampleSelector is.
type Engine struct {
	Analyzer  *sections.Analyzer
	Scorer    similarity.Scorer
	Projector projection.Projector
}

// Option configures an Engine.
type Option func(*Engine)

// WithExamples sets how keyword example sentences are picked.
func WithExamples(sel sections.ExampleSelector) Option {
	return func(e *Engine) { e.Analyzer.Examples = sel }
}

// WithFailureHandler receives sections that failed and fell back.
func WithFailureHandler(fn func(title string, err error)) Option {
	return func(e *Engine) { e.Analyzer.OnFailure = fn }
}

// WithProjector replaces the default projection settings.
func WithProjector(p projection.Projector) Option {
	return func(e *Engine) { e.Projector = p }
}

// WithWeights replaces the job-type weight table.
func WithWeights(fn func(features.JobType) similarity.Weights) Option {
	return func(e *Engine) { e.Scorer.WeightsFor = fn }
}

// New builds an Engine with default settings.
func New(opts ...Option) *Engine {
	e := &Engine{
		Analyzer:  &sections.Analyzer{},
		Projector: projection.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze compares resume with job. Empty or blank input is rejected with an
// *InputError before any work is done.
func (e *Engine) Analyze(resume, job string, pref sections.Relocation) (Result, error) {
	if strings.TrimSpace(resume) == "" {
		return Result{}, &InputError{Field: "resume"}
	}
	if strings.TrimSpace(job) == "" {
		return Result{}, &InputError{Field: "job"}
	}

	results := e.Analyzer.Analyze(resume, job, pref)
	score := e.Scorer.Score(resume, job, results)

	current := math.Min(score.Value, e.Projector.Ceiling)
	expected, gain := e.Projector.Project(current, results)

	return Result{
		CurrentScore:  current,
		ExpectedScore: expected,
		PotentialGain: gain,
		JobType:       score.JobType,
		Weights:       score.Weights,
		Breakdown:     score.Breakdown,
		Sections:      results,
	}, nil
}
