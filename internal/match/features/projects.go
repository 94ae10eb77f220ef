package features

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ProjectEvidence describes the projects a resume shows. Inferred is set when
// no Projects header exists and the count comes from project-like phrasing
// elsewhere in the document.
type ProjectEvidence struct {
	Section      string
	Count        int
	Technologies SkillSet
	Inferred     bool
}

// ProjectSectionRule finds a projects header line and decides where the
// section body ends.
type ProjectSectionRule struct {
	Name   string
	Header *regexp.Regexp
	Stop   func(line string) bool
}

var (
	projectBlockHeaderRe  = regexp.MustCompile(`(?i)^[ \t#*•-]*(?:key\s+|personal\s+|academic\s+|selected\s+|notable\s+|relevant\s+)?projects?[ \t]*:?[ \t*]*$`)
	projectInlineHeaderRe = regexp.MustCompile(`(?i)^[ \t#*•-]*(?:key\s+)?projects?[ \t]*:`)
	titleCaseLineRe       = regexp.MustCompile(`^\s*[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s*$`)
)

// ProjectSectionRules is evaluated in order; the first rule whose header is
// found wins.
var ProjectSectionRules = []ProjectSectionRule{
	{
		Name:   "block",
		Header: projectBlockHeaderRe,
		Stop:   isOtherSectionHeader,
	},
	{
		Name:   "inline",
		Header: projectInlineHeaderRe,
		Stop: func(line string) bool {
			return isOtherSectionHeader(line) || titleCaseLineRe.MatchString(line)
		},
	},
}

func isOtherSectionHeader(line string) bool {
	name, _, ok := sectionHeader(line)
	return ok && name != "projects"
}

// ExtractProjectSection returns the body of the projects section, or "".
func ExtractProjectSection(text string) string {
	lines, _ := splitLines(text)
	for _, rule := range ProjectSectionRules {
		for i, line := range lines {
			loc := rule.Header.FindStringIndex(line)
			if loc == nil {
				continue
			}
			var body []string
			if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
				body = append(body, rest)
			}
			for _, next := range lines[i+1:] {
				if rule.Stop(next) {
					break
				}
				body = append(body, next)
			}
			if section := strings.TrimSpace(strings.Join(body, "\n")); section != "" {
				return section
			}
		}
	}
	return ""
}

// ExtractProjects gathers project evidence from a resume.
func ExtractProjects(text string) ProjectEvidence {
	section := ExtractProjectSection(text)
	if section != "" {
		return ProjectEvidence{
			Section:      section,
			Count:        CountProjects(section),
			Technologies: ExtractTechnologies(section),
		}
	}
	count, lines := projectIndicators(text)
	evidence := ProjectEvidence{
		Count:        count,
		Technologies: make(SkillSet),
		Inferred:     count > 0,
	}
	if count > 0 {
		evidence.Section = strings.Join(lines, "\n")
		evidence.Technologies = ExtractTechnologies(evidence.Section)
	}
	return evidence
}

var (
	dateRangeRe      = regexp.MustCompile(`\d{2}/\d{4}\s*-\s*\d{2}/\d{4}`)
	explicitMarkerRe = regexp.MustCompile(`(?im)^[ \t]*(?:project\s*:|\d+\.)`)
)

var bulletPrefixes = []string{"-", "•", "▪", "●", "*"}

// CountProjects estimates how many projects a section describes. Several
// independent heuristics run and the largest count wins; a non-empty section
// counts as at least one project.
func CountProjects(section string) int {
	if strings.TrimSpace(section) == "" {
		return 0
	}
	lines := strings.Split(section, "\n")
	count := max(
		countTitleLines(lines),
		len(dateRangeRe.FindAllString(section, -1)),
		countBulletGroups(lines),
		len(explicitMarkerRe.FindAllString(section, -1)),
	)
	if count == 0 {
		count = 1
	}
	return count
}

// countTitleLines counts short lines followed by a descriptive line.
func countTitleLines(lines []string) int {
	n := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		length := utf8.RuneCountInString(trimmed)
		if length <= 5 || length >= 50 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
			continue
		}
		if i+1 < len(lines) && utf8.RuneCountInString(strings.TrimSpace(lines[i+1])) > 30 {
			n++
		}
	}
	return n
}

// countBulletGroups counts runs of bullet lines; a short non-bullet line
// closes the current run.
func countBulletGroups(lines []string) int {
	groups := 0
	inGroup := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if hasBulletPrefix(trimmed) {
			if !inGroup {
				groups++
				inGroup = true
			}
			continue
		}
		if length := utf8.RuneCountInString(trimmed); length > 5 && length < 50 {
			inGroup = false
		}
	}
	return groups
}

func hasBulletPrefix(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

var projectIndicatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:developed|built|created|engineered|designed)\s+(?:a|an)\s+\w+\s+(?:website|application|app|platform|system|tool|dashboard|service)`),
	regexp.MustCompile(`(?i)(?:project|portfolio)\s*:`),
	dateRangeRe,
}

// projectIndicators scans a whole document for project-like phrasing. It
// returns the strongest single indicator count and the lines that matched.
func projectIndicators(text string) (int, []string) {
	best := 0
	seen := make(map[string]bool)
	var matched []string
	lines := strings.Split(text, "\n")
	for _, re := range projectIndicatorPatterns {
		hits := len(re.FindAllString(text, -1))
		if hits > best {
			best = hits
		}
		if hits == 0 {
			continue
		}
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || seen[trimmed] || !re.MatchString(line) {
				continue
			}
			seen[trimmed] = true
			matched = append(matched, trimmed)
		}
	}
	return best, matched
}
