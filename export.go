package crawler

import "encoding/json"

// ExportEntry is one element of the JSON artifact. Content is the page-local
// Markdown, headings unshifted, so consumers can re-level it themselves.
type ExportEntry struct {
	URL      string   `json:"url"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// ExportJSON serializes the successfully extracted records, in discovery
// order, as an ordered JSON array of {url, content, metadata} objects. The
// Nth entry corresponds to the Nth content section of the merged Markdown
// document.
func ExportJSON(records []*PageRecord) ([]byte, error) {
	entries := make([]ExportEntry, 0, len(records))
	for _, rec := range records {
		if rec.Outcome.Failed() {
			continue
		}
		entries = append(entries, ExportEntry{
			URL:      rec.URL,
			Content:  CleanupMarkdown(rec.Content),
			Metadata: rec.Metadata,
		})
	}

	out, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return nil, Errorf(EINTERNAL, "marshal export: %v", err)
	}
	return out, nil
}
