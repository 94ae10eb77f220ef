package analyses

import (
	"time"

	"resume-matcher/internal/match"
	"resume-matcher/internal/match/features"
	"resume-matcher/internal/match/sections"
	"resume-matcher/internal/match/similarity"
)

// Request describes one analysis. Exactly one resume source is used, in the
// order Resume, DocumentID, ResumeText; JobURL wins over JobText.
type Request struct {
	UserID     string
	ResumeText string
	DocumentID string
	Resume     *Upload
	JobText    string
	JobURL     string
	Relocation sections.Relocation
}

// Upload is a resume file sent with the request.
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

// JobSource describes a job posting fetched from a URL.
type JobSource struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Analysis is the response for one analysis call. Nothing is persisted.
type Analysis struct {
	ID              string               `json:"analysisId"`
	DocumentID      string               `json:"documentId,omitempty"`
	CurrentScore    float64              `json:"currentScore"`
	ExpectedScore   float64              `json:"expectedScore"`
	PotentialGain   float64              `json:"potentialGain"`
	JobType         features.JobType     `json:"jobType"`
	Weights         similarity.Weights   `json:"weights"`
	Breakdown       similarity.Breakdown `json:"breakdown"`
	Sections        []sections.Result    `json:"sections"`
	Impact          []match.ImpactPoint  `json:"impact"`
	Recommendations []Recommendation     `json:"recommendations"`
	Contact         features.Contact     `json:"contact"`
	Job             *JobSource           `json:"job,omitempty"`
	Relocation      string               `json:"relocation"`
	CreatedAt       time.Time            `json:"createdAt"`
}
