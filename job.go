package crawler

import (
	"net/url"
	"strings"
	"time"
)

// DefaultMaxPages caps a crawl when no explicit page limit is configured.
const DefaultMaxPages = 500

// CrawlJob describes a single crawl run. It is immutable once the run starts.
type CrawlJob struct {
	// SeedURL is the starting point for recursive link discovery.
	// Ignored when SeedList is non-empty.
	SeedURL string

	// SeedList replaces recursive discovery with a fixed, ordered set of
	// URLs. Link discovery is disabled in list mode.
	SeedList []string

	// BaseURL is the scope prefix; discovered links outside it are dropped.
	BaseURL string

	// Excludes drops any URL containing one of these substrings.
	Excludes []string

	// Title becomes the top-level heading of the merged document.
	Title string

	// MaxPages caps the number of URLs accepted into the frontier.
	MaxPages int

	// RateLimit is the request budget in requests per minute. 0 = unlimited.
	RateLimit int

	// Delay is a fixed pause after every request regardless of outcome.
	Delay time.Duration

	// ProxyURL optionally routes all requests through an outbound proxy.
	ProxyURL string

	// Individual writes one Markdown file per page instead of merging.
	Individual bool
}

// Validate returns an ECONFIG error if the job is contradictory or
// incomplete. It must pass before any fetch occurs.
func (j *CrawlJob) Validate() error {
	if j.SeedURL == "" && len(j.SeedList) == 0 {
		return Errorf(ECONFIG, "no URL provided: set a seed URL or a URL list")
	}
	if j.BaseURL == "" {
		return Errorf(ECONFIG, "base URL required")
	}
	if j.MaxPages <= 0 {
		return Errorf(ECONFIG, "page limit must be positive, got %d", j.MaxPages)
	}
	if j.RateLimit < 0 {
		return Errorf(ECONFIG, "rate limit must not be negative, got %d", j.RateLimit)
	}
	if j.Delay < 0 {
		return Errorf(ECONFIG, "delay must not be negative, got %s", j.Delay)
	}
	if j.ProxyURL != "" {
		if _, err := url.Parse(j.ProxyURL); err != nil {
			return Errorf(ECONFIG, "invalid proxy URL %q: %v", j.ProxyURL, err)
		}
	}
	return nil
}

// Seeds returns the ordered seed URLs for the run.
func (j *CrawlJob) Seeds() []string {
	if len(j.SeedList) > 0 {
		return DeduplicateURLs(j.SeedList)
	}
	return []string{j.SeedURL}
}

// Discover reports whether the run follows links found on fetched pages.
// List-mode runs fetch exactly the supplied URLs.
func (j *CrawlJob) Discover() bool {
	return len(j.SeedList) == 0
}

// Scope returns the containment policy for the job.
func (j *CrawlJob) Scope() Scope {
	return NewScope(j.BaseURL, j.Excludes)
}

// Scope defines which discovered links are eligible for crawling: a base-URL
// prefix plus exclusion substrings.
type Scope struct {
	base     string // canonical prefix, no trailing slash
	excludes []string
}

// NewScope builds a Scope from a base URL and exclusion substrings.
func NewScope(baseURL string, excludes []string) Scope {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	ex := make([]string, 0, len(excludes))
	for _, e := range excludes {
		if e != "" {
			ex = append(ex, e)
		}
	}
	return Scope{base: base, excludes: ex}
}

// Allows reports whether a canonical URL is inside the crawl scope.
// The URL must equal the base or extend it at a path or query boundary, and
// must not contain any exclusion substring.
func (s Scope) Allows(canonicalURL string) bool {
	if s.base != "" {
		if canonicalURL != s.base &&
			!strings.HasPrefix(canonicalURL, s.base+"/") &&
			!strings.HasPrefix(canonicalURL, s.base+"?") {
			return false
		}
	}
	for _, e := range s.excludes {
		if strings.Contains(canonicalURL, e) {
			return false
		}
	}
	return true
}

// Base returns the scope's base prefix without a trailing slash.
func (s Scope) Base() string {
	return s.base
}
