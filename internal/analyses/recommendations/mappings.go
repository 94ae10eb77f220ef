package recommendations

import (
	"strings"

	"resume-matcher/internal/match/sections"
)

type sectionProfile struct {
	category string
	impact   string
	why      string
}

var profiles = map[string]sectionProfile{
	sections.TitleSkills: {
		category: "SKILLS",
		impact:   "high",
		why:      "Applicant tracking systems filter on required skills before a recruiter reads the resume.",
	},
	sections.TitleKeywords: {
		category: "KEYWORDS",
		impact:   "high",
		why:      "Mirroring the posting's vocabulary raises keyword match and readability for reviewers.",
	},
	sections.TitleExperience: {
		category: "EXPERIENCE",
		impact:   "medium",
		why:      "Experience level is one of the first screening criteria.",
	},
	sections.TitleProjects: {
		category: "PROJECTS",
		impact:   "medium",
		why:      "Projects show the required technologies in use.",
	},
	sections.TitleEducation: {
		category: "EDUCATION",
		impact:   "low",
		why:      "Stated degree requirements are often checked automatically.",
	},
	sections.TitleLocation: {
		category: "LOCATION",
		impact:   "low",
		why:      "Location mismatches without a relocation note are a common rejection reason.",
	},
}

func profileFor(title string) sectionProfile {
	if p, ok := profiles[title]; ok {
		return p
	}
	return sectionProfile{category: "GENERAL", impact: "low", why: "Improves how well the resume matches the posting."}
}

func severityFor(status sections.Status) string {
	switch status {
	case sections.StatusMissing:
		return SeverityCritical
	case sections.StatusWeak:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// fromSections emits one recommendation per section that is not good.
func fromSections(results []sections.Result) []Recommendation {
	out := make([]Recommendation, 0, len(results))
	for _, r := range results {
		if r.Status == sections.StatusGood {
			continue
		}
		p := profileFor(r.Title)
		title := "Improve " + strings.ToLower(r.Title)
		if r.Status == sections.StatusMissing {
			title = "Address missing " + strings.ToLower(r.Title)
		}
		out = append(out, Recommendation{
			ID:       "SECTION_" + strings.ToUpper(slugify(r.Title)),
			Category: p.category,
			Severity: severityFor(r.Status),
			Title:    title,
			Why:      p.why,
			Action:   plain(r.Recommendation),
			Impact:   p.impact,
			Terms:    r.Missing,
		})
	}
	return out
}

// fromSkillGroups emits up to two category-level skill suggestions.
func fromSkillGroups(results []sections.Result) []Recommendation {
	var out []Recommendation
	for _, r := range results {
		if r.Title != sections.TitleSkills || r.Status == sections.StatusGood {
			continue
		}
		for _, g := range r.SkillGroups {
			if len(g.Missing) == 0 {
				continue
			}
			out = append(out, Recommendation{
				ID:       "SKILLS_" + strings.ToUpper(slugify(g.Category)),
				Category: "SKILLS",
				Severity: SeverityInfo,
				Title:    "Show " + g.Category + " experience",
				Why:      "Grouping related skills makes gaps easy to close in one pass.",
				Action:   "Add evidence of " + strings.Join(g.Missing, ", ") + " in your skills or experience bullets.",
				Impact:   "medium",
				Terms:    g.Missing,
			})
			if len(out) == 2 {
				return out
			}
		}
	}
	return out
}

// fromKeywordExamples turns the first keyword example into a concrete rewrite hint.
func fromKeywordExamples(results []sections.Result) []Recommendation {
	for _, r := range results {
		if r.Title != sections.TitleKeywords || len(r.Examples) == 0 {
			continue
		}
		ex := r.Examples[0]
		return []Recommendation{{
			ID:       "KEYWORD_EXAMPLE_" + strings.ToUpper(slugify(ex.Keyword)),
			Category: "KEYWORDS",
			Severity: SeverityInfo,
			Title:    "Work \"" + ex.Keyword + "\" into a bullet",
			Why:      "Keywords used in context read better than a keyword list.",
			Action:   plain(ex.Example),
			Impact:   "low",
			Terms:    []string{ex.Keyword},
		}}
	}
	return nil
}

// plain drops the markdown emphasis used in section recommendations.
func plain(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
