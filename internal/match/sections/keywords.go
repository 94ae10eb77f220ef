package sections

import (
	"fmt"

	"resume-matcher/internal/match/features"
)

const (
	keywordsManyLimit = 5
	keywordsShown     = 7
)

func evaluateKeywords(in input) Result {
	jobWords := features.KeywordTokens(in.job)
	resumeWords := features.KeywordTokens(in.resume)

	var missing []string
	for _, kw := range features.ImportantKeywords() {
		_, inJob := jobWords[kw]
		_, inResume := resumeWords[kw]
		if inJob && !inResume {
			missing = append(missing, kw)
		}
	}

	n := len(missing)
	if n == 0 {
		return Result{
			Status:         StatusGood,
			Recommendation: "Excellent keyword coverage! Your resume aligns well with the job requirements.",
		}
	}

	res := Result{Status: StatusWeak}
	if n > keywordsManyLimit {
		res.Missing = firstN(missing, keywordsShown)
		res.Recommendation = fmt.Sprintf(
			"Add these %d important keywords throughout your resume: %s. Incorporate them naturally in your experience descriptions, skills section, and professional summary.",
			n, bold(res.Missing))
	} else {
		res.Missing = missing
		res.Recommendation = fmt.Sprintf(
			"Incorporate these missing keywords: %s. Weave them naturally into your experience bullet points and skills section where relevant.",
			bold(missing))
	}
	res.Examples = keywordExamples(res.Missing, in.examples)
	return res
}
