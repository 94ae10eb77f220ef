// Package metrics keeps process-wide counters and histograms and renders
// them in the Prometheus text exposition format.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// collector is one metric family in the registry.
type collector interface {
	writeTo(buf *bytes.Buffer)
}

var (
	analysisStarted   = newCounter("analysis_started_total", "Total analyses started")
	analysisCompleted = newCounter("analysis_completed_total", "Total analyses completed")
	analysisFailed    = newCounter("analysis_failed_total", "Total analyses failed")
	analysisDuration  = newHistogram("analysis_duration_ms", "Analysis duration in milliseconds",
		[]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})
	sectionStatus  = newCounterVec("analysis_section_status_total", "Section outcomes by section and status", "section", "status")
	jobFetches     = newCounterVec("job_fetch_total", "Job posting fetches by outcome", "outcome")
	documentUpload = newCounterVec("document_upload_total", "Document uploads by outcome", "outcome")
	httpRequests   = newCounterVec("http_requests_total", "HTTP requests by route and status class", "route", "code")
	rateLimited    = newCounterVec("rate_limited_total", "Requests rejected by the rate limiter", "group")

	registry = []collector{
		analysisStarted, analysisCompleted, analysisFailed, analysisDuration,
		sectionStatus, jobFetches, documentUpload, httpRequests, rateLimited,
	}
)

func IncAnalysisStarted()   { analysisStarted.inc() }
func IncAnalysisCompleted() { analysisCompleted.inc() }
func IncAnalysisFailed()    { analysisFailed.inc() }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
// Negative values count as zero.
func ObserveAnalysisDurationMs(value float64) {
	analysisDuration.Observe(max(value, 0))
}

// IncSectionStatus counts one section outcome, e.g. ("Projects", "weak").
func IncSectionStatus(section, status string) { sectionStatus.inc(section, status) }

// IncJobFetch counts one job posting fetch by outcome ("ok" or "error").
func IncJobFetch(outcome string) { jobFetches.inc(outcome) }

// IncDocumentUpload counts one upload by outcome ("ok", "rejected", "error").
func IncDocumentUpload(outcome string) { documentUpload.inc(outcome) }

// IncHTTPRequest counts a finished request. Unmatched routes are folded
// into "unmatched"; status codes into their class ("2xx", "4xx").
func IncHTTPRequest(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.inc(route, strconv.Itoa(status/100)+"xx")
}

// IncRateLimited counts one request rejected in the named limiter group.
func IncRateLimited(group string) { rateLimited.inc(group) }

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// Handler serves Render over HTTP.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render writes every registered metric in registration order.
func Render() string {
	var buf bytes.Buffer
	for _, m := range registry {
		m.writeTo(&buf)
	}
	return buf.String()
}

func writeHeader(buf *bytes.Buffer, name, help, kind string) {
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

type counter struct {
	name, help string
	value      atomic.Uint64
}

func newCounter(name, help string) *counter {
	return &counter{name: name, help: help}
}

func (c *counter) inc() { c.value.Add(1) }

func (c *counter) writeTo(buf *bytes.Buffer) {
	writeHeader(buf, c.name, c.help, "counter")
	fmt.Fprintf(buf, "%s %d\n", c.name, c.value.Load())
}

// counterVec is a counter partitioned by a fixed list of label names.
type counterVec struct {
	name, help string
	labels     []string

	mu     sync.Mutex
	counts map[string]uint64 // rendered label set -> count
}

func newCounterVec(name, help string, labels ...string) *counterVec {
	return &counterVec{name: name, help: help, labels: labels, counts: make(map[string]uint64)}
}

func (v *counterVec) inc(values ...string) {
	key := labelSet(v.labels, values)
	v.mu.Lock()
	v.counts[key]++
	v.mu.Unlock()
}

func (v *counterVec) writeTo(buf *bytes.Buffer) {
	v.mu.Lock()
	keys := make([]string, 0, len(v.counts))
	for k := range v.counts {
		keys = append(keys, k)
	}
	counts := make(map[string]uint64, len(keys))
	for _, k := range keys {
		counts[k] = v.counts[k]
	}
	v.mu.Unlock()

	sort.Strings(keys)
	writeHeader(buf, v.name, v.help, "counter")
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", v.name, k, counts[k])
	}
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func labelSet(names, values []string) string {
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(labelEscaper.Replace(value))
		b.WriteByte('"')
	}
	return b.String()
}

// histogram counts each observation once, in the first bucket whose upper
// bound holds it. Rendering makes the buckets cumulative.
type histogram struct {
	name, help string

	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(name, help string, buckets []float64) *histogram {
	return &histogram{
		name:    name,
		help:    help,
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	idx := sort.SearchFloat64s(h.buckets, value)
	if idx < len(h.counts) {
		h.counts[idx]++
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func (h *histogram) writeTo(buf *bytes.Buffer) {
	snap := h.Snapshot()
	writeHeader(buf, h.name, h.help, "histogram")
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", h.name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", h.name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", h.name, snap.count)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
