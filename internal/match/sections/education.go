package sections

import (
	"fmt"

	"resume-matcher/internal/match/features"
)

func evaluateEducation(in input) Result {
	jobSpan := features.ExtractEducation(in.job)
	if jobSpan == "" {
		return Result{
			Status:         StatusGood,
			Recommendation: "No specific education requirements detected in the job description.",
		}
	}
	// Only credentials make a requirement. Field words such as "software"
	// or "engineering" show up in experience lines inside the same block.
	reqs := features.DegreeKeywordsIn(jobSpan)
	if len(reqs) == 0 {
		return Result{Status: StatusGood, Recommendation: "Education section looks adequate."}
	}

	// Without an education block only credential words count; field names
	// like "engineering" appear all over a resume.
	var held []string
	if span := features.ExtractEducation(in.resume); span != "" {
		held = features.EducationKeywordsIn(span)
	} else {
		held = features.DegreeKeywordsIn(in.resume)
	}
	if len(held) > 0 {
		return Result{
			Status:         StatusGood,
			Recommendation: "Your education qualifications are present and appear to meet the requirements.",
		}
	}
	return Result{
		Status:  StatusMissing,
		Missing: reqs,
		Recommendation: fmt.Sprintf(
			"The job requires these educational qualifications: %s. Make sure your Education section is clearly visible and matches the requirements.",
			bold(reqs)),
	}
}
