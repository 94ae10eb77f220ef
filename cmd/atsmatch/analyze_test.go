package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-matcher/internal/jobposting"
)

const (
	resumeText = `Jane Doe
jane@example.com
Go developer
Skills
Go, Docker, PostgreSQL
Projects
Log Shipper
A log shipping agent written in Go with batching and retries.`
	jobText = "Backend engineer: Go, PostgreSQL, Docker, Kubernetes. 3-5 years experience. Agile team, testing."
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeTextReport(t *testing.T) {
	resume := writeFile(t, "resume.txt", resumeText)
	job := writeFile(t, "job.md", jobText)

	out, _, err := execute(t, "analyze", "--resume", resume, "--job", job)
	require.NoError(t, err)
	assert.Contains(t, out, "Match score:")
	assert.Contains(t, out, "Expected score:")
	assert.Contains(t, out, "Skills & Technologies")
	assert.Contains(t, out, "Important Keywords")
	assert.NotContains(t, out, "**")
}

func TestAnalyzeJSON(t *testing.T) {
	resume := writeFile(t, "resume.txt", resumeText)
	job := writeFile(t, "job.txt", jobText)

	out, _, err := execute(t, "analyze", "-r", resume, "-j", job, "--json", "--relocate", "willing")
	require.NoError(t, err)

	var parsed struct {
		CurrentScore  float64          `json:"currentScore"`
		ExpectedScore float64          `json:"expectedScore"`
		Sections      []map[string]any `json:"sections"`
		Relocation    string           `json:"relocation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed.Sections, 6)
	assert.Equal(t, "willing", parsed.Relocation)
	assert.GreaterOrEqual(t, parsed.ExpectedScore, parsed.CurrentScore)
}

func TestAnalyzeJobURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Backend Engineer</title></head><body><div class="job-description"><p>` + jobText + `</p></div></body></html>`))
	}))
	defer srv.Close()
	resume := writeFile(t, "resume.txt", resumeText)

	out, _, err := execute(t, "analyze", "--resume", resume, "--job-url", srv.URL, "--allow-private")
	require.NoError(t, err)
	assert.Contains(t, out, "Job posting:    Backend Engineer")

	_, _, err = execute(t, "analyze", "--resume", resume, "--job-url", srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, jobposting.ErrBlockedAddress)
}

func TestAnalyzeFlagDefaultsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JOB_FETCH_TIMEOUT", "3s")

	flags := newAnalyzeCmd().Flags()
	assert.Equal(t, "debug", flags.Lookup("log-level").DefValue)
	assert.Equal(t, "3s", flags.Lookup("timeout").DefValue)
}

func TestLoadEnvFeedsFlagDefaults(t *testing.T) {
	// Register restores, then clear so the .env file can fill them in.
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("JOB_FETCH_TIMEOUT", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	require.NoError(t, os.Unsetenv("JOB_FETCH_TIMEOUT"))

	loadEnv(writeFile(t, ".env", "LOG_LEVEL=error\nJOB_FETCH_TIMEOUT=45\n"))

	flags := newAnalyzeCmd().Flags()
	assert.Equal(t, "error", flags.Lookup("log-level").DefValue)
	assert.Equal(t, "45s", flags.Lookup("timeout").DefValue)
}

func TestAnalyzeFlagErrors(t *testing.T) {
	resume := writeFile(t, "resume.txt", resumeText)
	job := writeFile(t, "job.txt", jobText)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing resume", args: []string{"analyze", "--job", job}, wantErr: "resume"},
		{name: "missing job", args: []string{"analyze", "--resume", resume}, wantErr: "job"},
		{name: "both job sources", args: []string{"analyze", "--resume", resume, "--job", job, "--job-url", "https://example.com"}, wantErr: "job-url"},
		{name: "bad relocation", args: []string{"analyze", "--resume", resume, "--job", job, "--relocate", "maybe"}, wantErr: "relocation"},
		{name: "unreadable resume", args: []string{"analyze", "--resume", filepath.Join(t.TempDir(), "nope.txt"), "--job", job}, wantErr: "read resume"},
		{name: "empty resume", args: []string{"analyze", "--resume", writeFile(t, "empty.txt", ""), "--job", job}, wantErr: "extract"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "atsmatch dev\n", out)
}
