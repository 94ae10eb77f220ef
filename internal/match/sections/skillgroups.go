package sections

import (
	"sort"

	"resume-matcher/internal/match/features"
)

type skillCategory struct {
	name  string
	items []string
}

// skillCategories drives the order of a suggested skills section. A skill
// belongs to the first category listing it.
var skillCategories = []skillCategory{
	{name: "Languages", items: []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php",
		"swift", "kotlin", "go", "rust", "scala", "r", "matlab", "sql",
	}},
	{name: "Frontend", items: []string{
		"html", "css", "react", "angular", "vue", "svelte", "next.js", "nuxt", "gatsby",
		"webpack", "babel", "vite", "rollup",
	}},
	{name: "Backend", items: []string{
		"node.js", "express", "django", "flask", "fastapi", "spring", "laravel", "rails",
		"rest", "graphql", "grpc", "websockets", "api", "prisma", "sequelize", "mongoose",
	}},
	{name: "Databases", items: []string{
		"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "cassandra", "nosql",
	}},
	{name: "Cloud & DevOps", items: []string{
		"docker", "kubernetes", "jenkins", "aws", "azure", "gcp", "heroku", "vercel", "netlify",
		"git", "github", "gitlab", "bitbucket",
	}},
	{name: "Data & ML", items: []string{
		"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	}},
	{name: "Testing", items: []string{
		"jest", "mocha", "pytest", "junit", "selenium", "cypress",
	}},
	{name: "Soft Skills", items: features.SoftSkills()},
}

// GroupSkills lays out a skills section combining the resume's existing
// skills with the missing ones, grouped by category. It returns nil when
// nothing is missing. Categories with no members are omitted.
func GroupSkills(missing, existing []string) []SkillGroup {
	if len(missing) == 0 {
		return nil
	}
	missingSet := features.NewSkillSet(missing...)
	all := features.NewSkillSet(existing...).Union(missingSet)

	var groups []SkillGroup
	placed := make(map[string]bool)
	for _, cat := range skillCategories {
		g := SkillGroup{Category: cat.name, Items: []string{}, Missing: []string{}}
		for _, item := range cat.items {
			if placed[item] || !all.Has(item) {
				continue
			}
			placed[item] = true
			g.Items = append(g.Items, item)
			if missingSet.Has(item) {
				g.Missing = append(g.Missing, item)
			}
		}
		if len(g.Items) > 0 {
			sort.Strings(g.Items)
			sort.Strings(g.Missing)
			groups = append(groups, g)
		}
	}
	return groups
}
