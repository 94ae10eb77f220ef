package similarity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-matcher/internal/match/features"
	"resume-matcher/internal/match/sections"
)

func TestWeightsValidate(t *testing.T) {
	for _, jt := range []features.JobType{
		features.JobTypeFrontend, features.JobTypeBackend, features.JobTypeFullstack,
		features.JobTypeDevOps, features.JobTypeData, features.JobTypeGeneral,
	} {
		require.NoError(t, WeightsFor(jt).Validate(), jt)
	}
	assert.Error(t, Weights{Lexical: 0.5, Skills: 0.5, Keywords: 0.5}.Validate())
	assert.Error(t, Weights{Lexical: -0.1, Skills: 0.6, Keywords: 0.4, Sections: 0.1}.Validate())
	assert.NoError(t, Weights{Lexical: 0.305, Skills: 0.4, Keywords: 0.2, Sections: 0.1}.Validate())
}

func TestWeightsFor(t *testing.T) {
	assert.Equal(t, Weights{Lexical: 0.25, Skills: 0.45, Keywords: 0.20, Sections: 0.10}, WeightsFor(features.JobTypeFrontend))
	assert.Equal(t, Weights{Lexical: 0.35, Skills: 0.35, Keywords: 0.20, Sections: 0.10}, WeightsFor(features.JobTypeBackend))
	assert.Equal(t, Weights{Lexical: 0.30, Skills: 0.40, Keywords: 0.20, Sections: 0.10}, WeightsFor(features.JobTypeData))
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"bb", "cc", "dd", "bb cc", "cc dd"}, terms("a bb cc dd"))
	assert.Empty(t, terms(""))
}

func TestVocabularyCapAndTies(t *testing.T) {
	docs := []map[string]int{
		{"go": 3, "sql": 1, "api": 1},
		{"go": 1, "zed": 2},
	}
	assert.Equal(t, []string{"go", "zed", "api"}, vocabulary(docs, 3))
	assert.Len(t, vocabulary(docs, 10), 4)
}

func TestTFIDFCosine(t *testing.T) {
	text := "senior golang engineer building distributed systems"
	assert.InDelta(t, 1.0, TFIDFCosine(text, text), 1e-9)
	assert.Equal(t, 0.0, TFIDFCosine("golang developer", "python analyst"))
	assert.Equal(t, 0.0, TFIDFCosine("", ""))
	assert.Equal(t, 0.0, TFIDFCosine("a b c", "x y z"))

	a := "golang engineer kubernetes docker"
	b := "golang developer aws lambda"
	sim := TFIDFCosine(a, b)
	assert.Greater(t, sim, 0.0)
	assert.Less(t, sim, 1.0)
	assert.Equal(t, sim, TFIDFCosine(b, a))
}

func TestSkillsScore(t *testing.T) {
	assert.Equal(t, neutralOverlap, skillsScore("python", "sales associate"))

	job := "Required skills: Python, Docker\n\nNice to have: AWS, Kubernetes"
	assert.InDelta(t, 0.65, skillsScore("Python Docker", job), 1e-9)
	assert.Equal(t, 1.0, skillsScore("Python Docker AWS Kubernetes", job))
	assert.Equal(t, "Required skills: Python, Docker", requiredSkillsBlock(job))
	assert.Equal(t, "", requiredSkillsBlock("Nice to have: Go"))
}

func TestRequiredSkillsBlockStopsAtNextBlock(t *testing.T) {
	posting := "About the role\n\nRequired skills\n\n- Python\n- Docker\n\nBenefits\n\nWe use Kubernetes and AWS internally."
	assert.Equal(t, "Required skills\n\n- Python\n- Docker", requiredSkillsBlock(posting))
	assert.Equal(t, "Required skills: Go", requiredSkillsBlock("Required skills: Go\n\nNice to have: Rust"))
	assert.Equal(t, "REQUIRED SKILLS: Go, SQL", requiredSkillsBlock("REQUIRED SKILLS: Go, SQL"))

	job := "Required skills: Go, Docker\n\nNice to have: AWS, Kubernetes"
	assert.InDelta(t, 0.65, skillsScore("Go Docker", job), 1e-9)
}

func TestKeywordScore(t *testing.T) {
	assert.Equal(t, neutralOverlap, keywordScore("agile", "no listed words here"))
	assert.Equal(t, 0.5, keywordScore("Agile teams.", "agile, testing"))
	assert.Equal(t, 1.0, keywordScore("ci/cd, testing", "We value CI/CD and testing."))
}

func TestSectionScore(t *testing.T) {
	assert.Equal(t, neutralSections, sectionScore(nil))
	results := []sections.Result{
		{Status: sections.StatusGood},
		{Status: sections.StatusWeak},
		{Status: sections.StatusMissing},
	}
	assert.InDelta(t, (0.95+0.7+0.4)/3, sectionScore(results), 1e-9)
}

func TestLexicalShortJobBoost(t *testing.T) {
	resume := "golang engineer kubernetes docker"
	job := "golang developer aws lambda"
	raw := TFIDFCosine(resume, job)
	assert.InDelta(t, raw*1.2, lexicalScore(resume, job, job), 1e-9)

	long := strings.Repeat("word ", shortJobWords)
	assert.InDelta(t, raw, lexicalScore(resume, job, long), 1e-9)
}

func TestScore(t *testing.T) {
	var s Scorer
	resume := "Frontend developer. React, TypeScript, CSS. Agile team player, testing."
	job := "Frontend engineer: React, TypeScript and CSS. Agile team, testing."
	got := s.Score(resume, job, nil)

	assert.Equal(t, features.JobTypeFrontend, got.JobType)
	assert.Equal(t, WeightsFor(features.JobTypeFrontend), got.Weights)
	assert.GreaterOrEqual(t, got.Value, 0.0)
	assert.LessOrEqual(t, got.Value, 100.0)
	assert.Equal(t, 1.0, got.Breakdown.Skills)
	assert.Equal(t, 1.0, got.Breakdown.Keywords)
	assert.Equal(t, neutralSections, got.Breakdown.Sections)

	b, w := got.Breakdown, got.Weights
	want := Round2((b.Lexical*w.Lexical + b.Skills*w.Skills + b.Keywords*w.Keywords + b.Sections*w.Sections) * 100)
	assert.Equal(t, want, got.Value)
	assert.Equal(t, got, s.Score(resume, job, nil))
	assert.NotContains(t, got.NormalizedJob, " and ")
}

func TestScoreBounds(t *testing.T) {
	var s Scorer
	pairs := [][2]string{
		{"", ""},
		{"x", "y"},
		{strings.Repeat("python docker agile ", 50), "python docker agile"},
	}
	for _, p := range pairs {
		got := s.Score(p[0], p[1], nil)
		assert.GreaterOrEqual(t, got.Value, 0.0)
		assert.LessOrEqual(t, got.Value, 100.0)
	}
}

func TestScoreCustomWeights(t *testing.T) {
	s := Scorer{WeightsFor: func(features.JobType) Weights {
		return Weights{Sections: 1}
	}}
	got := s.Score("a", "b", []sections.Result{{Status: sections.StatusGood}})
	assert.Equal(t, 95.0, got.Value)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.345000001))
	assert.Equal(t, 12.34, Round2(12.3449))
	assert.Equal(t, 0.0, Round2(0))
}
