package sections

import (
	"fmt"

	"resume-matcher/internal/match/features"
)

const (
	projectsGoodCount     = 2
	projectsExcellent     = 3
	projectsRelevantNeed  = 2
	projectsTechSuggested = 5
)

func evaluateProjects(in input) Result {
	ev := features.ExtractProjects(in.resume)
	jobTech := features.ExtractTechnologies(in.job)
	jobSkills := features.ExtractSkills(in.job)
	relevant := ev.Technologies.Intersect(jobSkills)

	ratio := 1.0
	if jobTech.Len() > 0 {
		ratio = min(1, float64(relevant.Len())/float64(jobTech.Len()))
	}
	res := Result{Metadata: Metadata{
		ProjectCount:         intPtr(ev.Count),
		RelevantProjectRatio: floatPtr(ratio),
	}}

	need := min(projectsRelevantNeed, jobSkills.Len())
	switch {
	case ev.Count == 0:
		res.Status = StatusMissing
		res.Missing = []string{"Projects section"}
		res.Recommendation = "Add a Projects section showcasing 2-4 relevant projects that demonstrate your skills with technologies mentioned in the job description."
		return res

	case ev.Count >= projectsGoodCount && relevant.Len() >= need:
		res.Status = StatusGood
		if ev.Count >= projectsExcellent {
			res.Recommendation = fmt.Sprintf("Excellent! You have %d projects that align well with the job requirements.", ev.Count)
		} else {
			res.Recommendation = fmt.Sprintf("Good! You have %d projects aligned with required technologies.", ev.Count)
		}

	case ev.Count >= projectsGoodCount:
		res.Status = StatusWeak
		techs := firstN(features.OrderByAppearance(in.job, jobTech.Minus(ev.Technologies).Sorted()), projectsTechSuggested)
		res.Missing = techs
		if len(techs) > 0 {
			res.Recommendation = fmt.Sprintf(
				"You have %d projects. Enhance them by incorporating these job-relevant technologies: %s. Update existing projects or start a new one using the required tech stack.",
				ev.Count, bold(techs))
		} else {
			res.Recommendation = fmt.Sprintf(
				"You have %d projects. Add more measurable outcomes and technical details to strengthen them.", ev.Count)
		}

	default:
		res.Status = StatusWeak
		techs := firstN(features.OrderByAppearance(in.job, jobTech.Sorted()), projectsTechSuggested)
		res.Missing = techs
		if len(techs) > 0 {
			res.Recommendation = fmt.Sprintf(
				"You have 1 project. Add 1-2 more projects using technologies like: %s. This will demonstrate your ability to work with the required tech stack.",
				bold(techs))
		} else {
			res.Recommendation = "You have 1 project. Add 1-2 more relevant projects to strengthen your technical credibility."
		}
	}

	if ev.Inferred {
		res.Recommendation += " List them under a dedicated Projects heading so they are easy to find."
	}
	return res
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
