// Package features extracts structured signals (skills, education, experience
// ranges, locations, project evidence, contact details) from raw text.
//
// All reference vocabularies are package-level data initialised once and never
// written to afterwards. Accessors hand out copies so callers cannot mutate them.
package features

var technologies = []string{
	// languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "php", "swift",
	"kotlin", "go", "rust", "scala", "r", "matlab", "html", "css", "sql", "nosql",
	// frameworks and runtimes
	"react", "angular", "vue", "svelte", "next.js", "nuxt", "gatsby",
	"node.js", "express", "django", "flask", "fastapi", "spring", "laravel", "rails",
	// data stores
	"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "cassandra",
	// delivery and hosting
	"docker", "kubernetes", "jenkins", "git", "github", "gitlab", "bitbucket",
	"aws", "azure", "gcp", "heroku", "vercel", "netlify",
	// machine learning
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	// interfaces
	"rest", "graphql", "grpc", "websockets", "api",
	// testing
	"jest", "mocha", "pytest", "junit", "selenium", "cypress",
	// build tooling and ORMs
	"webpack", "babel", "vite", "rollup", "prisma", "sequelize", "mongoose",
}

// strictTerms are technologies that are also everyday words or letters.
// They count only in their exact spelling, never when joined to a
// neighbouring word ("go-to", "R&D"), and not when the next word makes a
// phrase ("go live").
var strictTerms = map[string]strictTerm{
	"go": {spelling: "Go", phrasal: []string{"ahead", "back", "beyond", "live", "out", "over", "the", "through", "to"}},
	"r":  {spelling: "R"},
}

var softSkills = []string{
	"leadership", "communication", "teamwork", "problem-solving", "analytical",
	"creative", "organized", "detail-oriented", "time-management", "adaptable",
	"collaborative", "initiative", "critical-thinking", "decision-making",
}

// synonyms maps alternate spellings onto the canonical vocabulary entry.
// No value is itself a key, which keeps NormalizeSkill idempotent.
var synonyms = map[string]string{
	"reactjs":  "react",
	"react.js": "react",
	"nodejs":   "node.js",
	"node":     "node.js",
	"nextjs":   "next.js",
	"next":     "next.js",
	"vuejs":    "vue",
	"vue.js":   "vue",
	"postgres": "postgresql",
	"mongo":    "mongodb",
	"k8s":      "kubernetes",
	"js":       "javascript",
	"ts":       "typescript",
	"py":       "python",
	"golang":   "go",
}

// detectableAliases are synonym keys distinctive enough to be searched for in
// free text. Short or common-word aliases ("next", "node", "js") are only
// applied when a caller normalizes a name it already has.
var detectableAliases = []string{
	"reactjs", "react.js", "nodejs", "nextjs", "vuejs", "vue.js",
	"postgres", "mongo", "k8s", "golang",
}

var importantKeywords = []string{
	"agile", "scrum", "team", "project", "collaboration", "communication",
	"leadership", "problem-solving", "analytical", "performance", "optimization",
	"deployment", "testing", "debugging", "documentation", "workflow", "api",
	"database", "frontend", "backend", "fullstack", "development", "design",
	"architecture", "scalable", "efficient", "responsive", "ci/cd", "devops",
	"cloud", "security", "authentication", "authorization",
}

var educationKeywords = []string{
	"bachelor", "master", "phd", "degree", "diploma", "certification",
	"computer science", "engineering", "information technology", "software",
	"b.tech", "m.tech", "b.e", "m.e", "bsc", "msc", "bca", "mca",
}

// degreeKeywords is the subset of educationKeywords that names a credential
// rather than a field of study.
var degreeKeywords = []string{
	"bachelor", "master", "phd", "degree", "diploma",
	"b.tech", "m.tech", "b.e", "m.e", "bsc", "msc", "bca", "mca",
}

type roleKeywords struct {
	role     JobType
	keywords []string
}

// jobTypeKeywords is evaluated in order; the first role with any hit wins.
var jobTypeKeywords = []roleKeywords{
	{role: JobTypeFrontend, keywords: []string{
		"frontend", "front-end", "ui", "ux", "react", "angular", "vue", "html", "css",
		"javascript", "typescript", "responsive", "web design",
	}},
	{role: JobTypeBackend, keywords: []string{
		"backend", "back-end", "server", "api", "database", "sql", "nosql", "node",
		"django", "flask", "spring", "microservices", "rest", "graphql",
	}},
	{role: JobTypeFullstack, keywords: []string{
		"fullstack", "full-stack", "full stack", "mern", "mean", "lamp",
	}},
	{role: JobTypeDevOps, keywords: []string{
		"devops", "sre", "infrastructure", "ci/cd", "docker", "kubernetes", "aws",
		"azure", "gcp", "jenkins", "terraform", "ansible",
	}},
	{role: JobTypeData, keywords: []string{
		"data scientist", "data engineer", "data analyst", "machine learning", "ml",
		"ai", "deep learning", "nlp", "computer vision", "analytics",
	}},
}

var indianCities = []string{
	"bangalore", "bengaluru", "mumbai", "delhi", "hyderabad", "pune", "chennai",
	"kolkata", "ahmedabad", "jaipur", "surat", "lucknow", "kanpur", "nagpur",
	"indore", "thane", "bhopal", "visakhapatnam", "vadodara", "kochi", "trivandrum",
	"thiruvananthapuram", "noida", "gurgaon", "gurugram",
}

var globalCities = []string{
	"london", "new york", "san francisco", "seattle", "austin", "boston",
	"toronto", "vancouver", "sydney", "melbourne", "singapore", "dubai",
	"paris", "berlin", "amsterdam", "tokyo", "beijing", "shanghai",
}

var countries = []string{
	"india", "usa", "uk", "united kingdom", "united states", "canada",
	"australia", "germany", "france", "singapore", "uae", "netherlands",
	"japan", "china", "remote",
}

// Technologies returns the technology vocabulary.
func Technologies() []string { return clone(technologies) }

// SoftSkills returns the soft-skill vocabulary.
func SoftSkills() []string { return clone(softSkills) }

// ImportantKeywords returns the important-keyword vocabulary in priority order.
func ImportantKeywords() []string { return clone(importantKeywords) }

// EducationKeywords returns the education vocabulary.
func EducationKeywords() []string { return clone(educationKeywords) }

// Gazetteer returns the known place names in lookup order.
func Gazetteer() []string {
	out := make([]string, 0, len(indianCities)+len(globalCities)+len(countries))
	out = append(out, indianCities...)
	out = append(out, globalCities...)
	out = append(out, countries...)
	return out
}

// Synonyms returns a copy of the alias table.
func Synonyms() map[string]string {
	out := make(map[string]string, len(synonyms))
	for k, v := range synonyms {
		out[k] = v
	}
	return out
}

// JobTypeKeywords returns the keywords that classify a posting as role.
func JobTypeKeywords(role JobType) []string {
	for _, rk := range jobTypeKeywords {
		if rk.role == role {
			return clone(rk.keywords)
		}
	}
	return nil
}

func clone(in []string) []string {
	return append([]string(nil), in...)
}

var (
	technologySet = toSet(technologies)
	softSkillSet  = toSet(softSkills)
)

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}
