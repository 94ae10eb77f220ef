package features

import (
	"regexp"
	"strings"
)

// Contact holds the reachable identities listed on a resume.
type Contact struct {
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	URLs     []string `json:"urls,omitempty"`
	GitHub   string   `json:"github,omitempty"`
	LinkedIn string   `json:"linkedin,omitempty"`
}

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	urlRe      = regexp.MustCompile(`https?://[A-Za-z0-9$\-_@.&+!*(),%/?=#:~]+`)
	githubRe   = regexp.MustCompile(`github\.com/([a-z0-9-]+)`)
	linkedinRe = regexp.MustCompile(`linkedin\.com/in/([a-z0-9-]+)`)
)

// phonePatterns are tried in order; the first match wins.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{10}\b`),
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}\b`),
	regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
}

// ExtractContact pulls email, phone, links and profile handles from text.
func ExtractContact(text string) Contact {
	var c Contact
	c.Email = emailRe.FindString(text)
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			c.Phone = m
			break
		}
	}
	seen := make(map[string]bool)
	for _, u := range urlRe.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:)")
		if !seen[u] {
			seen[u] = true
			c.URLs = append(c.URLs, u)
		}
	}
	lower := strings.ToLower(text)
	if m := githubRe.FindStringSubmatch(lower); m != nil {
		c.GitHub = m[1]
	}
	if m := linkedinRe.FindStringSubmatch(lower); m != nil {
		c.LinkedIn = m[1]
	}
	return c
}
