package sections

import (
	"fmt"

	"resume-matcher/internal/match/features"
)

func evaluateExperience(in input) Result {
	job, jobOK := features.ExtractExperience(in.job)
	if !jobOK {
		return Result{Status: StatusGood, Recommendation: "Experience level appears adequate."}
	}
	resume, resumeOK := features.ExtractExperience(in.resume)

	if !resumeOK {
		if job.Min == 0 {
			return Result{
				Status: StatusGood,
				Recommendation: fmt.Sprintf(
					"This role accepts entry-level candidates (%s %s experience). As a fresh graduate or entry-level candidate, you're a good fit!",
					job, yearUnit(job)),
			}
		}
		item := fmt.Sprintf("%s %s experience", job, yearUnit(job))
		return Result{
			Status:  StatusMissing,
			Missing: []string{item},
			Recommendation: fmt.Sprintf(
				"The job requires %s %s of experience. Make sure this is clearly stated in your resume summary or experience section.",
				job, yearUnit(job)),
		}
	}

	switch {
	case job.Unbounded:
		if resume.Upper() >= job.Min {
			return Result{Status: StatusGood, Recommendation: fmt.Sprintf("Your experience meets the %s years requirement.", job)}
		}
		return weakExperience(job, resume)
	case job.Min == 0:
		if resume.Upper() <= job.Max {
			return Result{
				Status:         StatusGood,
				Recommendation: fmt.Sprintf("Perfect! This role accepts entry-level candidates (%s %s experience).", job, yearUnit(job)),
			}
		}
		return Result{
			Status:         StatusGood,
			Recommendation: fmt.Sprintf("Your experience exceeds the %s year range, which strengthens your application.", job),
		}
	case resume.Overlaps(job):
		return Result{Status: StatusGood, Recommendation: fmt.Sprintf("Your experience aligns with the %s year requirement.", job)}
	case resume.Upper() < job.Min:
		return weakExperience(job, resume)
	default:
		return Result{
			Status:         StatusGood,
			Recommendation: fmt.Sprintf("You have more experience than the typical %s year range, which strengthens your application.", job),
		}
	}
}

func weakExperience(job, resume features.ExperienceRange) Result {
	return Result{
		Status:  StatusWeak,
		Missing: []string{fmt.Sprintf("%s %s experience", job, yearUnit(job))},
		Recommendation: fmt.Sprintf(
			"The job requires %s %s of experience. Emphasize your %s %s and highlight relevant accomplishments to bridge the gap.",
			job, yearUnit(job), resume, yearUnit(resume)),
	}
}

func yearUnit(r features.ExperienceRange) string {
	if !r.Unbounded && r.Max <= 1 {
		return "year"
	}
	return "years"
}
