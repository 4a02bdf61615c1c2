package crawler

// ExtractResult holds the extracted content and metadata from an HTML page.
type ExtractResult struct {
	// ContentHTML is the page's primary readable content as clean HTML.
	// Boilerplate (nav, ads, footer, sidebar) has been removed.
	ContentHTML string

	// Metadata is populated from structured sources on the page; fields the
	// page does not declare are empty values of the correct shape.
	Metadata Metadata
}

// Extractor extracts main content and metadata from HTML pages.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL and returns the main
	// content with boilerplate removed. Returns an EEXTRACT error when no
	// usable content is recoverable.
	Extract(html string, pageURL string) (*ExtractResult, error)
}
