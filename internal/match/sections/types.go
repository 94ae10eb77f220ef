// Package sections runs the six rule-based gap checks (skills, projects,
// education, experience, location, keywords) that compare a resume with a job
// posting and classify each one as good, weak or missing.
package sections

import (
	"fmt"
	"strings"
)

// Status is the outcome of one section check.
type Status string

const (
	StatusGood    Status = "good"
	StatusWeak    Status = "weak"
	StatusMissing Status = "missing"
)

// Valid reports whether s is one of the three outcomes.
func (s Status) Valid() bool {
	switch s {
	case StatusGood, StatusWeak, StatusMissing:
		return true
	}
	return false
}

// Relocation is the candidate's declared willingness to move for the job.
type Relocation int

const (
	RelocationUnspecified Relocation = iota
	RelocationWilling
	RelocationUnwilling
)

func (r Relocation) String() string {
	switch r {
	case RelocationWilling:
		return "willing"
	case RelocationUnwilling:
		return "unwilling"
	default:
		return "unspecified"
	}
}

// ParseRelocation accepts willing/unwilling/unspecified as well as yes/no and
// true/false. The empty string is unspecified.
func ParseRelocation(s string) (Relocation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified", "unknown":
		return RelocationUnspecified, nil
	case "willing", "yes", "true":
		return RelocationWilling, nil
	case "unwilling", "no", "false":
		return RelocationUnwilling, nil
	}
	return RelocationUnspecified, fmt.Errorf("invalid relocation preference %q", s)
}

// Section titles, in the order Analyze reports them.
const (
	TitleSkills     = "Skills & Technologies"
	TitleProjects   = "Projects"
	TitleEducation  = "Education"
	TitleExperience = "Experience Level"
	TitleLocation   = "Location"
	TitleKeywords   = "Important Keywords"
)

// Metadata carries the numbers behind a status. Pointer fields are nil when
// the section does not produce them.
type Metadata struct {
	MatchRatio           *float64 `json:"matchRatio,omitempty"`
	ProjectCount         *int     `json:"projectCount,omitempty"`
	RelevantProjectRatio *float64 `json:"relevantProjectRatio,omitempty"`
	JobLocation          string   `json:"jobLocation,omitempty"`
	ResumeLocation       string   `json:"resumeLocation,omitempty"`
}

// KeywordExample is a sample resume bullet showing a missing keyword in use.
type KeywordExample struct {
	Keyword string `json:"keyword"`
	Example string `json:"example"`
}

// SkillGroup is one category of a suggested skills section.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
	Missing  []string `json:"missing"`
}

// Result is the outcome of one section check. Recommendation may wrap
// specific terms in ** markers for emphasis.
type Result struct {
	Icon           string           `json:"icon"`
	Title          string           `json:"title"`
	Status         Status           `json:"status"`
	Recommendation string           `json:"recommendation"`
	Missing        []string         `json:"missing"`
	Metadata       Metadata         `json:"metadata"`
	Examples       []KeywordExample `json:"examples,omitempty"`
	SkillGroups    []SkillGroup     `json:"skillGroups,omitempty"`
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func bold(items []string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = "**" + it + "**"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
