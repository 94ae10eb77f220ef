package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"resume-matcher/internal/documents"
	"resume-matcher/internal/extract"
	"resume-matcher/internal/jobposting"
	"resume-matcher/internal/match"
	"resume-matcher/internal/match/features"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/telemetry"
)

// Fetcher loads a job posting from a URL.
type Fetcher func(ctx context.Context, url string, opts jobposting.Options) (jobposting.Posting, error)

// Service runs analyses synchronously. Results are returned, never stored.
type Service struct {
	Engine *match.Engine
	// Docs resolves DocumentID references; nil disables them.
	Docs         *documents.Service
	Fetch        Fetcher
	FetchOptions jobposting.Options
	Now          func() time.Time
}

type resolvedInputs struct {
	resume  string
	job     string
	posting *jobposting.Posting
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Analyze resolves the resume and job text, runs the matching engine and
// assembles the response.
func (s *Service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	if err := checkSources(req); err != nil {
		return Analysis{}, err
	}

	start := time.Now()
	analysisID := uuid.NewString()
	metrics.IncAnalysisStarted()

	inputs, err := s.resolveInputs(ctx, req)
	if err != nil {
		s.fail(ctx, analysisID, req, err)
		return Analysis{}, err
	}

	engine := s.Engine
	if engine == nil {
		engine = match.New()
	}
	result, err := engine.Analyze(inputs.resume, inputs.job, req.Relocation)
	if err != nil {
		s.fail(ctx, analysisID, req, err)
		return Analysis{}, err
	}

	for _, section := range result.Sections {
		metrics.IncSectionStatus(section.Title, string(section.Status))
	}

	analysis := Analysis{
		ID:              analysisID,
		DocumentID:      strings.TrimSpace(req.DocumentID),
		CurrentScore:    result.CurrentScore,
		ExpectedScore:   result.ExpectedScore,
		PotentialGain:   result.PotentialGain,
		JobType:         result.JobType,
		Weights:         result.Weights,
		Breakdown:       result.Breakdown,
		Sections:        result.Sections,
		Impact:          match.SectionImpact(result.Sections),
		Recommendations: buildRecommendations(result.Sections),
		Contact:         features.ExtractContact(inputs.resume),
		Relocation:      req.Relocation.String(),
		CreatedAt:       s.now(),
	}
	if req.Resume != nil {
		analysis.DocumentID = ""
	}
	if inputs.posting != nil {
		analysis.Job = &JobSource{URL: inputs.posting.URL, Title: inputs.posting.Title}
	}

	durationMs := metrics.SinceMillis(start)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs)
	fields := logFields(ctx, req)
	fields["analysis_id"] = analysisID
	fields["job_type"] = string(result.JobType)
	fields["current_score"] = result.CurrentScore
	fields["expected_score"] = result.ExpectedScore
	fields["recommendations"] = len(analysis.Recommendations)
	fields["duration_ms"] = durationMs
	telemetry.Info("analysis.completed", fields)
	return analysis, nil
}

// checkSources rejects requests with no resume or no job before any I/O.
func checkSources(req Request) error {
	hasResume := req.Resume != nil || strings.TrimSpace(req.DocumentID) != "" || strings.TrimSpace(req.ResumeText) != ""
	if !hasResume {
		return &match.InputError{Field: "resume"}
	}
	if strings.TrimSpace(req.JobURL) == "" && strings.TrimSpace(req.JobText) == "" {
		return &match.InputError{Field: "job"}
	}
	return nil
}

// resolveInputs loads the resume and the job description concurrently. The
// first failure cancels the other side.
func (s *Service) resolveInputs(ctx context.Context, req Request) (resolvedInputs, error) {
	var out resolvedInputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		text, err := s.resolveResume(gctx, req)
		if err != nil {
			return err
		}
		out.resume = text
		return nil
	})
	g.Go(func() error {
		url := strings.TrimSpace(req.JobURL)
		if url == "" {
			out.job = req.JobText
			return nil
		}
		posting, err := s.fetchJob(gctx, url)
		if err != nil {
			return err
		}
		out.job = posting.Text
		out.posting = &posting
		return nil
	})

	if err := g.Wait(); err != nil {
		return resolvedInputs{}, err
	}
	return out, nil
}

func (s *Service) resolveResume(ctx context.Context, req Request) (string, error) {
	switch {
	case req.Resume != nil:
		return extract.ExtractTextFromBytes(ctx, req.Resume.Data, req.Resume.MimeType, req.Resume.FileName)
	case strings.TrimSpace(req.DocumentID) != "":
		if s.Docs == nil {
			return "", ErrDocumentsUnavailable
		}
		doc, err := s.Docs.Get(ctx, req.UserID, strings.TrimSpace(req.DocumentID))
		if err != nil {
			return "", err
		}
		return s.Docs.Text(ctx, doc)
	default:
		return req.ResumeText, nil
	}
}

func (s *Service) fetchJob(ctx context.Context, url string) (jobposting.Posting, error) {
	fetch := s.Fetch
	if fetch == nil {
		fetch = jobposting.Fetch
	}
	posting, err := fetch(ctx, url, s.FetchOptions)
	if err != nil {
		metrics.IncJobFetch("error")
		return jobposting.Posting{}, fmt.Errorf("%w: %w", ErrJobFetch, err)
	}
	metrics.IncJobFetch("ok")
	telemetry.Info("jobposting.fetched", map[string]any{
		"request_id":   requestIDFromContext(ctx),
		"url":          posting.URL,
		"title":        posting.Title,
		"content_type": posting.ContentType,
		"characters":   len([]rune(posting.Text)),
	})
	return posting, nil
}

func (s *Service) fail(ctx context.Context, analysisID string, req Request, err error) {
	metrics.IncAnalysisFailed()
	fields := logFields(ctx, req)
	fields["analysis_id"] = analysisID
	fields["error"] = err
	if isClientError(err) {
		telemetry.Warn("analysis.failed", fields)
		return
	}
	telemetry.Error("analysis.failed", fields)
}

func isClientError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrExtraction) ||
		errors.Is(err, ErrJobFetch) ||
		errors.Is(err, documents.ErrNotFound) ||
		errors.Is(err, documents.ErrInvalidInput)
}
