package crawler

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into Markdown.
	// Heading markers in the output reflect the page's own heading hierarchy.
	Convert(html string) (string, error)
}
