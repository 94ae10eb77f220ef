package sections

import (
	"fmt"

	"resume-matcher/internal/match/features"
)

func evaluateLocation(in input) Result {
	jobLoc, jobOK := features.ExtractLocation(in.job)
	if !jobOK {
		return Result{Status: StatusGood, Recommendation: "No specific location requirements detected."}
	}
	resumeLoc, resumeOK := features.ExtractLocation(in.resume)
	res := Result{Metadata: Metadata{JobLocation: jobLoc.Text, ResumeLocation: resumeLoc.Text}}

	if resumeOK && resumeLoc.Overlaps(jobLoc) {
		res.Status = StatusGood
		res.Recommendation = "Your location aligns with the job location."
		return res
	}

	if in.relocation == RelocationWilling {
		res.Status = StatusGood
		if resumeOK {
			res.Recommendation = fmt.Sprintf(
				"Job location: %s. Your resume shows: %s. Since you're willing to relocate, consider adding this to your resume or cover letter.",
				jobLoc.Text, resumeLoc.Text)
		} else {
			res.Recommendation = fmt.Sprintf(
				"The job specifies location: %s. Since you're willing to relocate, add this preference to your resume.", jobLoc.Text)
		}
		return res
	}

	res.Missing = []string{jobLoc.Text}
	if resumeOK {
		res.Status = StatusWeak
		if in.relocation == RelocationUnwilling {
			res.Recommendation = fmt.Sprintf(
				"Job location: %s. Your resume shows: %s. Location mismatch may affect your application. Consider applying to local positions.",
				jobLoc.Text, resumeLoc.Text)
		} else {
			res.Recommendation = fmt.Sprintf(
				"Job location: %s. Your resume shows: %s. Clarify if you're willing to relocate or work remotely.",
				jobLoc.Text, resumeLoc.Text)
		}
		return res
	}

	res.Status = StatusMissing
	if in.relocation == RelocationUnwilling {
		res.Recommendation = fmt.Sprintf(
			"The job specifies location: %s. Add your location to your resume if it matches, or note remote work preference.", jobLoc.Text)
	} else {
		res.Recommendation = fmt.Sprintf(
			"The job specifies location: %s. Consider adding your location or relocation preferences to your resume.", jobLoc.Text)
	}
	return res
}
