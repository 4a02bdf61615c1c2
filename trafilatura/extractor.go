// Package trafilatura implements crawler.Extractor on top of go-trafilatura,
// which strips navigation, boilerplate, and chrome from fetched pages and
// exposes document metadata.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	crawler "github.com/obeone/crawler-to-md"
	"golang.org/x/net/html"
)

// metadataDateFormat is the wire format for extracted publication dates.
const metadataDateFormat = "2006-01-02"

// Ensure Extractor implements crawler.Extractor at compile time.
var _ crawler.Extractor = (*Extractor)(nil)

// Extractor extracts the main content and metadata of an HTML page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns its main content plus the metadata
// schema. Every metadata field is present in the result; fields the page does
// not provide are empty.
func (e *Extractor) Extract(rawHTML, pageURL string) (*crawler.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, crawler.Errorf(crawler.EEXTRACT, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, crawler.Errorf(crawler.EEXTRACT, "extract %s: %v", pageURL, err)
	}
	if result.ContentNode == nil {
		return nil, crawler.Errorf(crawler.EEXTRACT, "no extractable content in %s", pageURL)
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, crawler.Errorf(crawler.EEXTRACT, "render content of %s: %v", pageURL, err)
	}

	return &crawler.ExtractResult{
		ContentHTML: contentHTML,
		Metadata:    mapMetadata(result.Metadata),
	}, nil
}

// mapMetadata converts trafilatura metadata into the fixed output schema.
func mapMetadata(m trafilatura.Metadata) crawler.Metadata {
	out := crawler.NewMetadata()
	out.Title = m.Title
	out.Description = m.Description
	if !m.Date.IsZero() {
		out.Date = m.Date.Format(metadataDateFormat)
	}
	if len(m.Categories) > 0 {
		out.Categories = append(out.Categories, m.Categories...)
	}
	if len(m.Tags) > 0 {
		out.Tags = append(out.Tags, m.Tags...)
	}
	out.PageType = m.PageType
	return out
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
