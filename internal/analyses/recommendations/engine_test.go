package recommendations

import (
	"fmt"
	"reflect"
	"testing"

	"resume-matcher/internal/match/sections"
)

func sampleResults() []sections.Result {
	return []sections.Result{
		{
			Title:          sections.TitleSkills,
			Status:         sections.StatusWeak,
			Recommendation: "Add **Kubernetes**, **Terraform** to your skills.",
			Missing:        []string{"Kubernetes", "Terraform"},
			SkillGroups: []sections.SkillGroup{
				{Category: "Cloud & DevOps", Items: []string{"Docker", "Kubernetes"}, Missing: []string{"Kubernetes"}},
				{Category: "Infrastructure as Code", Items: []string{"Terraform"}, Missing: []string{"Terraform"}},
				{Category: "Languages", Items: []string{"Go"}},
			},
		},
		{Title: sections.TitleProjects, Status: sections.StatusGood},
		{Title: sections.TitleEducation, Status: sections.StatusMissing, Recommendation: "Add your degree.", Missing: []string{"Bachelor's degree"}},
		{Title: sections.TitleExperience, Status: sections.StatusGood},
		{Title: sections.TitleLocation, Status: sections.StatusWeak, Recommendation: "Mention Berlin."},
		{
			Title:          sections.TitleKeywords,
			Status:         sections.StatusWeak,
			Recommendation: "Use **agile**.",
			Missing:        []string{"agile"},
			Examples:       []sections.KeywordExample{{Keyword: "agile", Example: "Delivered features in two-week agile sprints."}},
		},
	}
}

func TestGenerateDeterminism(t *testing.T) {
	first := Generate(sampleResults())
	second := Generate(sampleResults())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic recommendations ordering")
	}
}

func TestGenerateOrdering(t *testing.T) {
	got := Generate(sampleResults())
	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	expected := []string{
		"SECTION_EDUCATION",
		"SECTION_SKILLS-TECHNOLOGIES",
		"SECTION_IMPORTANT-KEYWORDS",
		"SECTION_LOCATION",
		"SKILLS_CLOUD-DEVOPS",
		"SKILLS_INFRASTRUCTURE-AS-CODE",
		"KEYWORD_EXAMPLE_AGILE",
	}
	if !reflect.DeepEqual(ids, expected) {
		t.Fatalf("unexpected order: %v", ids)
	}
	for i, r := range got {
		if r.Order != i+1 {
			t.Fatalf("expected order %d, got %d", i+1, r.Order)
		}
	}
	if got[0].Severity != SeverityCritical || got[1].Severity != SeverityWarning {
		t.Fatalf("missing sections must rank before weak ones: %+v", got[:2])
	}
	if got[1].Action != "Add Kubernetes, Terraform to your skills." {
		t.Fatalf("expected emphasis stripped, got %q", got[1].Action)
	}
}

func TestGenerateSkipsGoodSections(t *testing.T) {
	results := []sections.Result{
		{Title: sections.TitleSkills, Status: sections.StatusGood},
		{Title: sections.TitleKeywords, Status: sections.StatusGood},
	}
	if got := Generate(results); len(got) != 0 {
		t.Fatalf("expected no recommendations, got %+v", got)
	}
	if got := Generate(nil); len(got) != 0 {
		t.Fatalf("expected no recommendations for nil input, got %+v", got)
	}
}

func TestSortRanking(t *testing.T) {
	cases := []struct {
		name     string
		items    []Recommendation
		expected string
	}{
		{
			name: "critical_above_warning",
			items: []Recommendation{
				{ID: "a", Severity: SeverityWarning, Impact: "high", Title: "B"},
				{ID: "b", Severity: SeverityCritical, Impact: "low", Title: "A"},
			},
			expected: "b",
		},
		{
			name: "impact_breaks_severity_tie",
			items: []Recommendation{
				{ID: "a", Severity: SeverityWarning, Impact: "low", Title: "A"},
				{ID: "b", Severity: SeverityWarning, Impact: "medium", Title: "B"},
			},
			expected: "b",
		},
		{
			name: "category_breaks_impact_tie",
			items: []Recommendation{
				{ID: "a", Severity: SeverityWarning, Impact: "low", Category: "LOCATION", Title: "A"},
				{ID: "b", Severity: SeverityWarning, Impact: "low", Category: "EDUCATION", Title: "B"},
			},
			expected: "b",
		},
		{
			name: "title_breaks_category_tie",
			items: []Recommendation{
				{ID: "a", Severity: SeverityInfo, Impact: "low", Category: "SKILLS", Title: "b"},
				{ID: "b", Severity: SeverityInfo, Impact: "low", Category: "SKILLS", Title: "A"},
			},
			expected: "b",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sortRecommendations(tc.items)
			if tc.items[0].ID != tc.expected {
				t.Fatalf("expected %s first, got %s", tc.expected, tc.items[0].ID)
			}
		})
	}
}

func TestDedupeMergesFields(t *testing.T) {
	items := []Recommendation{
		{ID: "x", Severity: SeverityWarning, Impact: "low", Title: "First"},
		{ID: "x", Severity: SeverityCritical, Impact: "high", Why: "because", Action: "do it"},
		{ID: " ", Title: "dropped"},
	}
	got := dedupe(items)
	if len(got) != 1 {
		t.Fatalf("expected one recommendation, got %d", len(got))
	}
	want := Recommendation{ID: "x", Severity: SeverityCritical, Impact: "high", Title: "First", Why: "because", Action: "do it"}
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("unexpected merge: %+v", got[0])
	}
}

func TestGenerateMaxSeven(t *testing.T) {
	var results []sections.Result
	for i := 0; i < 10; i++ {
		results = append(results, sections.Result{Title: fmt.Sprintf("Section %d", i), Status: sections.StatusMissing})
	}
	got := Generate(results)
	if len(got) != MaxRecommendations {
		t.Fatalf("expected %d recommendations, got %d", MaxRecommendations, len(got))
	}
	if got[0].ID != "SECTION_SECTION-0" || got[6].ID != "SECTION_SECTION-6" {
		t.Fatalf("unexpected cap order: %s..%s", got[0].ID, got[6].ID)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Skills & Technologies": "skills-technologies",
		"  C++ / C#  ":          "c-c",
		"":                      "item",
		"Node.js":               "node-js",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
