package features

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ExperienceRange is a span of years. Max is meaningless when Unbounded is set
// ("5+ years"); otherwise Min <= Max.
type ExperienceRange struct {
	Min       int
	Max       int
	Unbounded bool
}

// Upper returns the inclusive upper bound, math.MaxInt when unbounded.
func (r ExperienceRange) Upper() int {
	if r.Unbounded {
		return math.MaxInt
	}
	return r.Max
}

// Overlaps reports whether the two ranges share at least one year.
func (r ExperienceRange) Overlaps(other ExperienceRange) bool {
	return r.Min <= other.Upper() && other.Min <= r.Upper()
}

func (r ExperienceRange) String() string {
	switch {
	case r.Unbounded:
		return fmt.Sprintf("%d+", r.Min)
	case r.Min == r.Max:
		return strconv.Itoa(r.Min)
	default:
		return fmt.Sprintf("%d-%d", r.Min, r.Max)
	}
}

// ExperienceRule turns one phrasing of "N years" into a range.
type ExperienceRule struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(m []string) (ExperienceRange, bool)
}

// ExperienceRules is evaluated in order; the first rule that matches wins.
var ExperienceRules = []ExperienceRule{
	{
		Name:    "range",
		Pattern: regexp.MustCompile(`\b(\d{1,2})\s*(?:-|–|—|to)\s*(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`),
		Build: func(m []string) (ExperienceRange, bool) {
			lo, err1 := strconv.Atoi(m[1])
			hi, err2 := strconv.Atoi(m[2])
			if err1 != nil || err2 != nil {
				return ExperienceRange{}, false
			}
			if lo > hi {
				lo, hi = hi, lo
			}
			return ExperienceRange{Min: lo, Max: hi}, true
		},
	},
	{
		Name:    "plus",
		Pattern: regexp.MustCompile(`\b(\d{1,2})\s*\+\s*(?:years?|yrs?)\b`),
		Build: func(m []string) (ExperienceRange, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return ExperienceRange{}, false
			}
			return ExperienceRange{Min: n, Unbounded: true}, true
		},
	},
	{
		Name:    "explicit",
		Pattern: regexp.MustCompile(`\b(\d{1,2})\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)\b`),
		Build: func(m []string) (ExperienceRange, bool) {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return ExperienceRange{}, false
			}
			return ExperienceRange{Min: n, Max: n}, true
		},
	},
}

// ExtractExperience returns the first years-of-experience phrase in text.
func ExtractExperience(text string) (ExperienceRange, bool) {
	lower := strings.ToLower(text)
	for _, rule := range ExperienceRules {
		m := rule.Pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if r, ok := rule.Build(m); ok {
			return r, true
		}
	}
	return ExperienceRange{}, false
}
