package features

import (
	"regexp"
	"strings"
)

var sectionHeaderRe = regexp.MustCompile(`^(?:key\s+|technical\s+|core\s+|work\s+|professional\s+|academic\s+|educational\s+|personal\s+|selected\s+|notable\s+|relevant\s+)?` +
	`(experience|skills|projects?|education|qualifications?|certifications?|achievements?|summary|objective|` +
	`employment|internships?|responsibilities|requirements|awards|publications|interests|languages|contact|background|profile)` +
	`(?:\s+(?:history|background|details|summary|and\s+\w+|&\s+\w+))?$`)

// sectionHeader reports whether line is a resume or posting section header,
// either standalone ("Projects") or leading an inline list ("Skills: Go, SQL").
// It returns the canonical header word and whether content follows a colon.
func sectionHeader(line string) (name string, inline bool, ok bool) {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	trimmed = strings.TrimLeft(trimmed, "#*•-=_ ")
	if trimmed == "" {
		return "", false, false
	}
	head := trimmed
	if i := strings.Index(trimmed, ":"); i >= 0 {
		head = strings.TrimSpace(trimmed[:i])
		inline = strings.TrimSpace(trimmed[i+1:]) != ""
	}
	head = strings.TrimRight(head, "*= ")
	if len(head) > 40 {
		return "", false, false
	}
	m := sectionHeaderRe.FindStringSubmatch(head)
	if m == nil {
		return "", false, false
	}
	return canonicalHeader(m[1]), inline, true
}

func canonicalHeader(word string) string {
	switch word {
	case "project", "projects":
		return "projects"
	case "qualification", "qualifications":
		return "qualifications"
	case "certification", "certifications":
		return "certifications"
	case "achievement", "achievements":
		return "achievements"
	case "internship", "internships":
		return "experience"
	case "employment":
		return "experience"
	default:
		return word
	}
}

// splitLines splits text on newlines and reports each line's byte offset.
func splitLines(text string) (lines []string, offsets []int) {
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			offsets = append(offsets, start)
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	offsets = append(offsets, start)
	return lines, offsets
}

// lineIndexAt returns the index of the line containing byte offset pos.
func lineIndexAt(offsets []int, pos int) int {
	idx := 0
	for i, off := range offsets {
		if off > pos {
			break
		}
		idx = i
	}
	return idx
}
