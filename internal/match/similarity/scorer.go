package similarity

import (
	"math"
	"regexp"
	"strings"

	"resume-matcher/internal/match/features"
	"resume-matcher/internal/match/sections"
	"resume-matcher/internal/match/textnorm"
)

const (
	shortJobWords     = 150
	shortJobBoost     = 1.2
	requiredBoostMax  = 0.3
	neutralOverlap    = 0.5
	neutralSections   = 0.8
	requiredSkillsTag = "required skills"
)

var requiredSkillsRe = regexp.MustCompile(`(?i)` + requiredSkillsTag)

var sectionValues = map[sections.Status]float64{
	sections.StatusMissing: 0.4,
	sections.StatusWeak:    0.7,
	sections.StatusGood:    0.95,
}

// Breakdown holds the four sub-scores, each in [0,1].
type Breakdown struct {
	Lexical  float64 `json:"lexical"`
	Skills   float64 `json:"skills"`
	Keywords float64 `json:"keywords"`
	Sections float64 `json:"sections"`
}

// Score is the outcome of one scoring call. Value is in [0,100] with two
// decimals.
type Score struct {
	Value            float64          `json:"value"`
	NormalizedResume string           `json:"-"`
	NormalizedJob    string           `json:"-"`
	JobType          features.JobType `json:"jobType"`
	Weights          Weights          `json:"weights"`
	Breakdown        Breakdown        `json:"breakdown"`
}

// Scorer computes match scores. The zero value uses WeightsFor.
type Scorer struct {
	WeightsFor func(features.JobType) Weights
}

// Score rates how well resume matches job. results may be nil, in which case
// the section signal takes a neutral value.
func (s Scorer) Score(resume, job string, results []sections.Result) Score {
	normResume := textnorm.Normalize(resume)
	normJob := textnorm.Normalize(job)

	jobType := features.ClassifyJobType(job)
	weightsFor := s.WeightsFor
	if weightsFor == nil {
		weightsFor = WeightsFor
	}
	w := weightsFor(jobType)

	b := Breakdown{
		Lexical:  lexicalScore(normResume, normJob, job),
		Skills:   skillsScore(resume, job),
		Keywords: keywordScore(resume, job),
		Sections: sectionScore(results),
	}
	total := b.Lexical*w.Lexical + b.Skills*w.Skills + b.Keywords*w.Keywords + b.Sections*w.Sections

	return Score{
		Value:            math.Max(0, math.Min(100, Round2(total*100))),
		NormalizedResume: normResume,
		NormalizedJob:    normJob,
		JobType:          jobType,
		Weights:          w,
		Breakdown:        b,
	}
}

// lexicalScore is the TF-IDF cosine of the normalized texts, boosted for
// short postings where TF-IDF underrates overlap.
func lexicalScore(normResume, normJob, rawJob string) float64 {
	v := TFIDFCosine(normResume, normJob)
	if len(strings.Fields(rawJob)) < shortJobWords {
		v = math.Min(1, v*shortJobBoost)
	}
	return v
}

func skillsScore(resume, job string) float64 {
	resumeSkills := features.ExtractSkills(resume)
	jobSkills := features.ExtractSkills(job)
	if jobSkills.Len() == 0 {
		return neutralOverlap
	}
	v := float64(resumeSkills.Intersect(jobSkills).Len()) / float64(jobSkills.Len())

	if block := requiredSkillsBlock(job); block != "" {
		required := features.ExtractTechnologies(block)
		if required.Len() > 0 {
			coverage := float64(required.Intersect(resumeSkills).Len()) / float64(required.Len())
			v *= 1 + coverage*requiredBoostMax
		}
	}
	return clamp01(v)
}

// requiredSkillsBlock returns the text from "required skills" up to the next
// blank line, or "". Case is kept because some technologies only count in
// their exact spelling. A heading on its own line is followed by its list, so
// the separator right after the tag does not end the block.
func requiredSkillsBlock(job string) string {
	job = strings.ReplaceAll(job, "\r\n", "\n")
	loc := requiredSkillsRe.FindStringIndex(job)
	if loc == nil {
		return ""
	}
	body := strings.TrimLeft(job[loc[1]:], ": \t\n")
	bodyStart := len(job) - len(body)
	if end := strings.Index(body, "\n\n"); end >= 0 {
		return job[loc[0] : bodyStart+end]
	}
	return job[loc[0]:]
}

func keywordScore(resume, job string) float64 {
	jobWords := features.KeywordTokens(job)
	resumeWords := features.KeywordTokens(resume)
	inJob, covered := 0, 0
	for _, kw := range features.ImportantKeywords() {
		if _, ok := jobWords[kw]; !ok {
			continue
		}
		inJob++
		if _, ok := resumeWords[kw]; ok {
			covered++
		}
	}
	if inJob == 0 {
		return neutralOverlap
	}
	return float64(covered) / float64(inJob)
}

func sectionScore(results []sections.Result) float64 {
	if len(results) == 0 {
		return neutralSections
	}
	sum := 0.0
	for _, r := range results {
		v, ok := sectionValues[r.Status]
		if !ok {
			v = sectionValues[sections.StatusMissing]
		}
		sum += v
	}
	return sum / float64(len(results))
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
