package analyses

import (
	"errors"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/match"
)

var (
	// ErrExtraction marks a resume that could not be turned into text.
	ErrExtraction = extract.ErrExtraction
	// ErrMissingInput marks an empty resume or job description.
	ErrMissingInput = match.ErrMissingInput
	// ErrJobFetch marks a job posting URL that could not be fetched or read.
	ErrJobFetch = errors.New("job posting fetch failed")
	// ErrDocumentsUnavailable is returned for document references when no
	// document service is configured.
	ErrDocumentsUnavailable = errors.New("document storage not configured")
)

const (
	ErrorCodeValidation   = "validation_error"
	ErrorCodeMissingInput = "missing_input"
	ErrorCodeExtraction   = "extraction_failed"
	ErrorCodeJobFetch     = "job_fetch_failed"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeInternal     = "internal"
)
