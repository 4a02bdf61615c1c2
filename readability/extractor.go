// Package readability implements crawler.Extractor on top of go-readability.
// It is an alternative to the trafilatura extractor for pages whose layout
// defeats trafilatura's heuristics.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	crawler "github.com/obeone/crawler-to-md"
)

// Ensure Extractor implements crawler.Extractor at compile time.
var _ crawler.Extractor = (*Extractor)(nil)

// Extractor extracts the main content of an HTML page using readability
// heuristics. Unlike the trafilatura extractor it only recovers the title and
// description; the remaining metadata fields stay empty.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns its main content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*crawler.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, crawler.Errorf(crawler.EEXTRACT, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, crawler.Errorf(crawler.EEXTRACT, "extract %s: %v", pageURL, err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, crawler.Errorf(crawler.EEXTRACT, "no extractable content in %s", pageURL)
	}

	meta := crawler.NewMetadata()
	meta.Title = article.Title
	meta.Description = article.Excerpt

	return &crawler.ExtractResult{
		ContentHTML: article.Content,
		Metadata:    meta,
	}, nil
}
