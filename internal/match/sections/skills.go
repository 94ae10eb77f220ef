package sections

import (
	"fmt"

	"resume-matcher/internal/match/features"
)

const (
	skillsWeakLimit = 3
	skillsShown     = 5
)

func evaluateSkills(in input) Result {
	resumeSkills := features.ExtractSkills(in.resume)
	jobSkills := features.ExtractSkills(in.job)
	resumeTech := features.ExtractTechnologies(in.resume)
	jobTech := features.ExtractTechnologies(in.job)

	missing := features.OrderByAppearance(in.job, jobSkills.Minus(resumeSkills).Sorted())

	ratio := 1.0
	if jobTech.Len() > 0 {
		ratio = float64(resumeTech.Intersect(jobTech).Len()) / float64(jobTech.Len())
	}
	res := Result{
		Missing:  missing,
		Metadata: Metadata{MatchRatio: floatPtr(ratio)},
	}

	n := len(missing)
	switch {
	case n == 0:
		res.Status = StatusGood
		res.Recommendation = "Excellent! Your skills and technologies align well with the job requirements."
		return res
	case n <= skillsWeakLimit:
		res.Status = StatusWeak
		res.Recommendation = fmt.Sprintf(
			"Add these %d missing %s: %s. Include them in your Skills section or demonstrate them through project descriptions.",
			n, plural(n, "skill"), bold(missing))
	default:
		res.Status = StatusMissing
		res.Recommendation = fmt.Sprintf(
			"Your resume is missing %d key technical skills. Priority skills to add: %s. Add these to your Skills section and showcase them in your projects.",
			n, bold(missing[:skillsShown]))
	}
	res.SkillGroups = GroupSkills(missing, resumeSkills.Sorted())
	return res
}
