package crawler

// LinkExtractor finds hyperlinks in HTML. Scope filtering is not its concern:
// it reports every candidate and the frontier polices containment.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns the href targets of all anchors,
	// resolved against pageURL, fragments stripped, deduplicated in document
	// order. Non-HTTP schemes (javascript:, mailto:, tel:) are skipped.
	ExtractLinks(html string, pageURL string) ([]string, error)
}
