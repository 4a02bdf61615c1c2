package crawler

import (
	"context"
	"time"
)

// Outcome classifies how processing a URL ended.
type Outcome string

// Fetch outcomes recorded on a PageRecord.
const (
	OutcomeSuccess      Outcome = "success"
	OutcomeHTTPError    Outcome = "http_error"
	OutcomeNetworkError Outcome = "network_error"
	OutcomeExtractError Outcome = "extract_error"
	OutcomeExcluded     Outcome = "excluded"
)

// Failed reports whether the outcome excludes the page from link discovery
// and from final output.
func (o Outcome) Failed() bool {
	return o != OutcomeSuccess
}

// Metadata holds the normalized per-page metadata schema. Every field is
// always present in serialized form; undiscoverable fields carry an empty
// value of the correct shape, never a null.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	PageType    string   `json:"pagetype"`
}

// NewMetadata returns a Metadata with empty sets initialized, so the schema
// serializes as [] rather than null.
func NewMetadata() Metadata {
	return Metadata{Categories: []string{}, Tags: []string{}}
}

// PageRecord is the unit of persisted state describing one crawled page.
type PageRecord struct {
	// URL is the canonical URL, the cache key.
	URL string

	// HTML is the raw fetched page. Persisted but not exported.
	HTML string

	// Content is the page-local extracted Markdown, headings unshifted.
	Content string

	// Metadata is the normalized metadata mapping.
	Metadata Metadata

	// Links are the same-scope canonical links discovered on the page.
	// Replayed on cache hits so interrupted runs resume coherently.
	Links []string

	// Outcome records how fetching and extraction ended.
	Outcome Outcome

	// Position is the discovery-order index, assigned at enqueue time.
	Position int

	// ContentHash fingerprints Content for cross-run validity checks.
	ContentHash string

	// FetchedAt is when the page was fetched and extracted.
	FetchedAt time.Time
}

// Validate returns an error if the record cannot be persisted.
func (p *PageRecord) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page record URL required")
	}
	if p.Outcome == "" {
		return Errorf(EINVALID, "page record outcome required")
	}
	return nil
}

// PageStore persists page records keyed by canonical URL. It is the single
// source of truth for "has this URL already been processed". Implementations
// must make each Store call atomic at the record granularity and tolerate
// out-of-order calls from concurrent workers; last writer wins per URL.
type PageStore interface {
	// Lookup returns the record for a canonical URL.
	// Returns ENOTFOUND on a cache miss, ECACHE if the store is unreadable.
	Lookup(ctx context.Context, canonicalURL string) (*PageRecord, error)

	// Store persists a record, replacing any previous record for the URL.
	// Returns ECACHE if the store is unwritable.
	Store(ctx context.Context, record *PageRecord) error

	// Close releases the underlying storage.
	Close() error
}
