package crawler

import (
	"net/url"
	"strings"
)

// Canonicalize normalizes a raw URL into the identity used by the visited set
// and the page cache: scheme + host + path + query, with the fragment stripped
// and any trailing slash removed from the path. Two URLs that canonicalize
// identically are the same crawl target.
func Canonicalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "parse URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported scheme %q in URL %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")

	return u.String(), nil
}

// URLDirname returns the URL with its last path segment removed, ending with
// a slash. It is the default base-URL scope for a seed URL.
// Example: https://example.com/docs/intro → https://example.com/docs/
func URLDirname(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "parse URL %q: %v", rawURL, err)
	}

	dir := u.Path
	if idx := strings.LastIndex(dir, "/"); idx >= 0 {
		dir = dir[:idx]
	}

	u.Path = dir
	u.RawQuery = ""
	u.Fragment = ""

	s := u.String()
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s, nil
}

// URLToFilename converts a URL into a filesystem-safe name derived from its
// host and path. Slashes and dots become underscores and consecutive
// underscores collapse.
// Example: https://example.com/docs/api → example_com_docs_api
func URLToFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SanitizeFilename(rawURL)
	}

	name := u.Host + u.Path
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, ".", "_")

	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
	return strings.Join(parts, "_")
}

// SanitizeFilename strips a free-form string (such as a crawl title) down to
// characters safe for a filename. Spaces become underscores; anything outside
// [A-Za-z0-9._-] is dropped.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// DeduplicateURLs removes duplicates from a list of URLs while preserving the
// order of first occurrence.
func DeduplicateURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
