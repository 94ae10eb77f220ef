package recommendations

// Recommendation is a ranked follow-up action derived from section results.
type Recommendation struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Title    string   `json:"title"`
	Why      string   `json:"why"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
	Terms    []string `json:"terms,omitempty"`
	Order    int      `json:"order"`
}

// Severity levels, highest first.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// MaxRecommendations caps the ranked list.
const MaxRecommendations = 7
