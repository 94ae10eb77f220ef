package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-matcher/internal/match/sections"
)

func results(statuses ...sections.Status) []sections.Result {
	out := make([]sections.Result, len(statuses))
	for i, s := range statuses {
		out[i] = sections.Result{Status: s}
	}
	return out
}

func TestProject(t *testing.T) {
	p := Default()
	tests := []struct {
		name         string
		current      float64
		statuses     []sections.Status
		wantExpected float64
		wantGain     float64
	}{
		{
			name:         "all good",
			current:      72.5,
			statuses:     []sections.Status{sections.StatusGood, sections.StatusGood, sections.StatusGood, sections.StatusGood, sections.StatusGood, sections.StatusGood},
			wantExpected: 72.5,
			wantGain:     0,
		},
		{
			name:         "one missing one weak",
			current:      50,
			statuses:     []sections.Status{sections.StatusMissing, sections.StatusWeak, sections.StatusGood},
			wantExpected: 62,
			wantGain:     12,
		},
		{
			name:         "gain capped",
			current:      40,
			statuses:     []sections.Status{sections.StatusMissing, sections.StatusMissing, sections.StatusMissing, sections.StatusMissing},
			wantExpected: 65,
			wantGain:     25,
		},
		{
			name:         "score capped at ceiling",
			current:      90,
			statuses:     []sections.Status{sections.StatusMissing, sections.StatusMissing},
			wantExpected: 98,
			wantGain:     16,
		},
		{
			name:         "current above ceiling is kept",
			current:      99,
			statuses:     []sections.Status{sections.StatusWeak},
			wantExpected: 99,
			wantGain:     4,
		},
		{name: "no sections", current: 10, wantExpected: 10, wantGain: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, gain := p.Project(tt.current, results(tt.statuses...))
			assert.Equal(t, tt.wantExpected, expected)
			assert.Equal(t, tt.wantGain, gain)
			assert.GreaterOrEqual(t, expected, tt.current)
		})
	}
}

func TestProjectRounds(t *testing.T) {
	expected, _ := Default().Project(33.333, results(sections.StatusWeak))
	assert.Equal(t, 37.33, expected)
}
