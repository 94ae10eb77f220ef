// Package jobposting fetches job descriptions from a URL and reduces the
// page to readable text.
package jobposting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; resume-matcher/1.0)"
	DefaultMaxBytes  = 2 << 20
)

const maxRedirects = 5

// ErrBlockedAddress is returned when the default client is asked to connect
// to a loopback, private, link-local or otherwise non-public address.
var ErrBlockedAddress = errors.New("address is not public")

// Ranges outside what netip classifies as private that still must not be
// reachable from a user-supplied URL.
var blockedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("64:ff9b::/96"),
}

var defaultClient = NewPublicClient()

// NewPublicClient returns a client that only connects to public addresses.
// The check runs on every dial, so redirects and DNS answers that point
// inside the network are refused as well.
func NewPublicClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   refuseNonPublic,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{
		Transport: transport,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

func refuseNonPublic(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	addr, err := netip.ParseAddr(host)
	if err != nil || !IsPublicAddr(addr) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

// IsPublicAddr reports whether addr is a globally routable unicast address.
func IsPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}
	for _, p := range blockedPrefixes {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}

// Posting is a fetched job description.
type Posting struct {
	URL         string
	Title       string
	Text        string
	ContentType string
	StatusCode  int
}

// Error represents a failed fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch job posting %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch job posting %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures Fetch. Zero fields take the package defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	// Client defaults to one built by NewPublicClient. The deadline comes
	// from Timeout.
	Client *http.Client
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.Client == nil {
		o.Client = defaultClient
	}
	return o
}

// Fetch downloads rawURL and extracts the job description text.
func Fetch(ctx context.Context, rawURL string, opts Options) (Posting, error) {
	opts = opts.withDefaults()
	rawURL = strings.TrimSpace(rawURL)

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Posting{}, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return Posting{}, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.5")

	resp, err := opts.Client.Do(req)
	if err != nil {
		return Posting{}, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	posting := Posting{
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return posting, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes+1))
	if err != nil {
		return posting, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	if int64(len(body)) > opts.MaxBytes {
		return posting, &Error{URL: rawURL, Message: fmt.Sprintf("response exceeds %d bytes", opts.MaxBytes)}
	}

	if isPlainText(posting.ContentType) {
		posting.Text = cleanWhitespace(string(body))
	} else {
		posting.Title, posting.Text, err = ExtractText(string(body))
		if err != nil {
			return posting, &Error{URL: rawURL, Message: "failed to parse HTML", Cause: err}
		}
	}
	if posting.Text == "" {
		return posting, &Error{URL: rawURL, Message: "no job description text found"}
	}
	return posting, nil
}

func isPlainText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/plain" || mediaType == "text/markdown"
}

var noiseSelector = strings.Join([]string{
	"nav", "footer", "header", "script", "style", "noscript", "svg", "form", "iframe",
	".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".popup",
	".apply-button", ".share", ".similar-jobs",
}, ", ")

// Block elements end with a blank line; list items and cells end with a
// line break so a list stays one block.
const (
	blockSelector = "p, div, section, article, ul, ol, table, h1, h2, h3, h4, h5, h6, dl, pre, blockquote"
	lineSelector  = "li, tr, dt, dd"
)

// Selectors returns the content selectors tried in order. The first match wins
// and the body is used when none match.
func Selectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".job-content",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"[itemprop='description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// ExtractText parses an HTML page and returns its title and main text with
// one line per block element.
func ExtractText(html string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(noiseSelector).Remove()

	var main *goquery.Selection
	for _, selector := range Selectors() {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("br").ReplaceWithHtml("\n")
	main.Find("li").PrependHtml("- ")
	main.Find(lineSelector).AppendHtml("\n")
	main.Find(blockSelector).AppendHtml("\n\n")
	return title, cleanWhitespace(main.Text()), nil
}

// cleanWhitespace trims every line, collapses runs of spaces and keeps at
// most one blank line between blocks.
func cleanWhitespace(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "-" {
			continue
		}
		if line == "" {
			blank = len(cleaned) > 0
			continue
		}
		if blank {
			cleaned = append(cleaned, "")
			blank = false
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}
