package features

// JobType is the coarse role family of a job posting.
type JobType string

const (
	JobTypeFrontend  JobType = "frontend"
	JobTypeBackend   JobType = "backend"
	JobTypeFullstack JobType = "fullstack"
	JobTypeDevOps    JobType = "devops"
	JobTypeData      JobType = "data"
	JobTypeGeneral   JobType = "general"
)

// ClassifyJobType returns the first role, in fixed priority order, whose
// keywords appear in the posting. Postings with no hit are JobTypeGeneral.
func ClassifyJobType(jobText string) JobType {
	flat := Flatten(jobText)
	if flat == "" {
		return JobTypeGeneral
	}
	for _, rk := range jobTypeKeywords {
		for _, kw := range rk.keywords {
			if ContainsTerm(flat, kw) {
				return rk.role
			}
		}
	}
	return JobTypeGeneral
}
