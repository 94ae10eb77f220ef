package sections

import (
	"fmt"
)

// Analyzer evaluates every section of a resume against a job posting.
// The zero value is ready to use and picks the first example template.
type Analyzer struct {
	Examples ExampleSelector
	// OnFailure is told about a section whose evaluation panicked and was
	// replaced by its fallback result. Nil ignores failures.
	OnFailure func(title string, err error)

	rules []rule
}

type input struct {
	resume     string
	job        string
	relocation Relocation
	examples   ExampleSelector
}

type rule struct {
	icon     string
	title    string
	fallback Status
	failMsg  string
	evaluate func(in input) Result
}

var defaultRules = []rule{
	{icon: "⚙️", title: TitleSkills, fallback: StatusMissing, failMsg: "Unable to analyze skills section.", evaluate: evaluateSkills},
	{icon: "🚀", title: TitleProjects, fallback: StatusMissing, failMsg: "Unable to analyze projects section.", evaluate: evaluateProjects},
	{icon: "🎓", title: TitleEducation, fallback: StatusGood, failMsg: "Unable to analyze education section.", evaluate: evaluateEducation},
	{icon: "💼", title: TitleExperience, fallback: StatusMissing, failMsg: "Unable to analyze experience section.", evaluate: evaluateExperience},
	{icon: "📍", title: TitleLocation, fallback: StatusGood, failMsg: "Unable to analyze location section.", evaluate: evaluateLocation},
	{icon: "🔑", title: TitleKeywords, fallback: StatusGood, failMsg: "Unable to analyze keywords.", evaluate: evaluateKeywords},
}

// Analyze returns one Result per section in fixed order. A section whose
// evaluation fails is replaced by its fallback result; the others are
// unaffected.
func (a *Analyzer) Analyze(resume, job string, pref Relocation) []Result {
	in := input{resume: resume, job: job, relocation: pref, examples: a.Examples}
	if in.examples == nil {
		in.examples = FirstTemplate()
	}
	rules := a.rules
	if rules == nil {
		rules = defaultRules
	}
	out := make([]Result, 0, len(rules))
	for _, r := range rules {
		res, err := safeEvaluate(r, in)
		if err != nil {
			if a.OnFailure != nil {
				a.OnFailure(r.title, err)
			}
			res = fallbackResult(r)
		}
		out = append(out, finalize(r, res))
	}
	return out
}

func safeEvaluate(r rule, in input) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("evaluate %s: %v", r.title, p)
		}
	}()
	return r.evaluate(in), nil
}

func fallbackResult(r rule) Result {
	return Result{Status: r.fallback, Recommendation: r.failMsg}
}

// finalize stamps the section identity and enforces the result invariants:
// a known status, and no missing items on a good section.
func finalize(r rule, res Result) Result {
	res.Icon = r.icon
	res.Title = r.title
	if !res.Status.Valid() {
		res.Status = r.fallback
	}
	if res.Status == StatusGood || res.Missing == nil {
		res.Missing = []string{}
	}
	return res
}
