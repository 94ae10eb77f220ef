package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/extract"
	"resume-matcher/internal/jobposting"
	"resume-matcher/internal/match/sections"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/telemetry"
)

type analyzeOptions struct {
	resumePath   string
	jobPath      string
	jobURL       string
	relocate     string
	asJSON       bool
	seed         int64
	timeout      time.Duration
	logLevel     string
	allowPrivate bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume file against a job description",
		Long:  "Score a resume (PDF, DOCX or plain text) against a job description read from a file or fetched from a URL.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "Path to the resume file (required)")
	cmd.Flags().StringVarP(&opts.jobPath, "job", "j", "", "Path to the job description file")
	cmd.Flags().StringVar(&opts.jobURL, "job-url", "", "URL of the job posting")
	cmd.Flags().StringVar(&opts.relocate, "relocate", "unspecified", "Relocation preference: willing, unwilling or unspecified")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full analysis as JSON")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for keyword example selection (0 keeps the first example)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.EnvDuration("JOB_FETCH_TIMEOUT", jobposting.DefaultTimeout), "Timeout for fetching --job-url (env JOB_FETCH_TIMEOUT)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", config.Env("LOG_LEVEL", "warn"), "Log level for diagnostics written to stderr (env LOG_LEVEL)")
	cmd.Flags().BoolVar(&opts.allowPrivate, "allow-private", false, "Let --job-url reach loopback and private network addresses")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
	cmd.MarkFlagsOneRequired("job", "job-url")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	relocation, err := sections.ParseRelocation(opts.relocate)
	if err != nil {
		return err
	}

	telemetry.SetOutput(cmd.ErrOrStderr())
	defer telemetry.SetOutput(nil)
	telemetry.SetLevel(opts.logLevel)

	resume, err := os.ReadFile(opts.resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	req := analyses.Request{
		Resume:     &analyses.Upload{FileName: filepath.Base(opts.resumePath), Data: resume},
		JobURL:     opts.jobURL,
		Relocation: relocation,
	}
	if opts.jobPath != "" {
		raw, err := os.ReadFile(opts.jobPath)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jobText, err := extract.ExtractTextFromBytes(ctx, raw, "", filepath.Base(opts.jobPath))
		if err != nil {
			return fmt.Errorf("job description: %w", err)
		}
		req.JobText = jobText
	}

	fetchOpts := jobposting.Options{Timeout: opts.timeout}
	if opts.allowPrivate {
		fetchOpts.Client = http.DefaultClient
	}
	svc := &analyses.Service{
		Engine:       bootstrap.NewEngine(opts.seed),
		FetchOptions: fetchOpts,
	}
	analysis, err := svc.Analyze(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}
	return writeReport(out, analysis)
}
