// Package fs writes crawl artifacts to the local filesystem.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	crawler "github.com/obeone/crawler-to-md"
)

// Writer writes the merged Markdown document, the JSON export, and optional
// per-page files for one crawl run. All writes go through a temp file and
// rename so readers never observe a partial artifact.
type Writer struct {
	outputDir string
}

// NewWriter creates a Writer rooted at the given output directory.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// RunDir returns the per-site directory artifacts are written into.
func (w *Writer) RunDir(baseURL string) string {
	return filepath.Join(w.outputDir, crawler.URLToFilename(baseURL))
}

// WriteMarkdown writes the merged Markdown document and returns its path.
func (w *Writer) WriteMarkdown(baseURL, title, document string) (string, error) {
	dir := w.RunDir(baseURL)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crawler.Errorf(crawler.EINTERNAL, "create output directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, artifactName(title)+".md")
	if err := writeAtomic(path, []byte(document)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes the JSON export next to the Markdown document and returns
// its path.
func (w *Writer) WriteJSON(baseURL, title string, data []byte) (string, error) {
	dir := w.RunDir(baseURL)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", crawler.Errorf(crawler.EINTERNAL, "create output directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, artifactName(title)+".json")
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteIndividual writes one Markdown file per successful record under a
// files/ subdirectory that mirrors the site's URL structure. It returns the
// directory written into.
func (w *Writer) WriteIndividual(baseURL string, records []*crawler.PageRecord) (string, error) {
	dir := filepath.Join(w.RunDir(baseURL), "files")
	for _, rec := range records {
		if rec.Outcome.Failed() {
			continue
		}
		rel, err := pagePath(rec.URL)
		if err != nil {
			return "", err
		}
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", crawler.Errorf(crawler.EINTERNAL, "create page directory %s: %v", filepath.Dir(path), err)
		}
		if err := writeAtomic(path, []byte(crawler.FormatPage(rec))); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// pagePath converts a canonical page URL to a relative Markdown file path.
// The site root and directory-style URLs become index.md.
func pagePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", crawler.Errorf(crawler.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" {
		return "index.md", nil
	}
	if strings.HasSuffix(path, "/") {
		return filepath.FromSlash(path) + "index.md", nil
	}

	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = crawler.SanitizeFilename(p)
	}
	return filepath.Join(parts...) + ".md", nil
}

// artifactName derives the artifact base name from the document title.
func artifactName(title string) string {
	name := crawler.SanitizeFilename(title)
	if name == "" {
		name = "output"
	}
	return name
}

// writeAtomic writes data to path via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return crawler.Errorf(crawler.EINTERNAL, "create temp file for %s: %v", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return crawler.Errorf(crawler.EINTERNAL, "write %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		return crawler.Errorf(crawler.EINTERNAL, "close %s: %v", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return crawler.Errorf(crawler.EINTERNAL, "rename %s into place: %v", path, err)
	}
	return nil
}
