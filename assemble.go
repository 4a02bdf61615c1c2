package crawler

import (
	"regexp"
	"strings"
)

// PageSeparator delimits merged pages in the final document. Counting
// separator lines yields the number of merged pages.
const PageSeparator = "---"

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})(\s+.*)?$`)
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
	fenceRe      = regexp.MustCompile("^(```|~~~)")
	separatorRe  = regexp.MustCompile(`(?m)^---$`)
	trailingWSRe = regexp.MustCompile(`(?m)[ \t]+$`)
)

// MinHeadingLevel returns the smallest heading level in a Markdown document,
// ignoring fenced code blocks. Returns 0 when the document has no headings.
func MinHeadingLevel(markdown string) int {
	minLevel := 0
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		if fenceRe.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			if minLevel == 0 || level < minLevel {
				minLevel = level
			}
		}
	}
	return minLevel
}

// ShiftHeadings re-levels every heading in a Markdown document by a constant
// offset, preserving relative nesting. Levels clamp to the 1..6 range
// Markdown can express. Fenced code blocks are left untouched.
func ShiftHeadings(markdown string, offset int) string {
	if offset == 0 {
		return markdown
	}

	lines := strings.Split(markdown, "\n")
	inFence := false
	for i, line := range lines {
		if fenceRe.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1]) + offset
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		lines[i] = strings.Repeat("#", level) + m[2]
	}
	return strings.Join(lines, "\n")
}

// NormalizeHeadings shifts a page's headings so its own top heading lands at
// the target level, with everything nested beneath shifted by the same
// amount. Pages without headings pass through unchanged.
func NormalizeHeadings(markdown string, target int) string {
	minLevel := MinHeadingLevel(markdown)
	if minLevel == 0 {
		return markdown
	}
	return ShiftHeadings(markdown, target-minLevel)
}

// CleanupMarkdown collapses runs of three or more newlines to exactly two and
// trims trailing whitespace from each line.
func CleanupMarkdown(markdown string) string {
	markdown = trailingWSRe.ReplaceAllString(markdown, "")
	return blankRunsRe.ReplaceAllString(markdown, "\n\n")
}

// FormatFrontMatter renders a page's metadata as an HTML-comment block with a
// fixed key order. Set-valued fields render as a bracketed, comma-joined
// list; an empty set renders as [].
func FormatFrontMatter(url string, m Metadata) string {
	var b strings.Builder
	b.WriteString("<!--\n")
	b.WriteString("URL: " + url + "\n")
	b.WriteString("title: " + m.Title + "\n")
	b.WriteString("description: " + m.Description + "\n")
	b.WriteString("date: " + m.Date + "\n")
	b.WriteString("categories: " + formatSet(m.Categories) + "\n")
	b.WriteString("tags: " + formatSet(m.Tags) + "\n")
	b.WriteString("pagetype: " + m.PageType + "\n")
	b.WriteString("-->")
	return b.String()
}

func formatSet(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}

// BuildDocument merges successfully extracted page records, in discovery
// order, into one Markdown document: a single top-level title heading, then
// per page a front-matter block, the page content re-leveled so its top
// heading becomes level 2, and a separator line. Failed records contribute
// nothing.
func BuildDocument(title string, records []*PageRecord) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n")

	for _, rec := range records {
		if rec.Outcome.Failed() {
			continue
		}
		b.WriteString("\n" + FormatFrontMatter(rec.URL, rec.Metadata) + "\n\n")
		b.WriteString(NormalizeHeadings(rec.Content, 2))
		b.WriteString("\n\n" + PageSeparator + "\n")
	}

	return CleanupMarkdown(b.String())
}

// FormatPage renders a single record for individual-file export: the same
// front-matter block followed by the content with its top heading at level 1.
func FormatPage(rec *PageRecord) string {
	var b strings.Builder
	b.WriteString(FormatFrontMatter(rec.URL, rec.Metadata) + "\n\n")
	b.WriteString(NormalizeHeadings(rec.Content, 1))
	b.WriteString("\n")
	return CleanupMarkdown(b.String())
}

// CountPages returns the number of merged pages in a document built by
// BuildDocument, by counting separator lines.
func CountPages(document string) int {
	return len(separatorRe.FindAllString(document, -1))
}
