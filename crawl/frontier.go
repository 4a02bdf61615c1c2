package crawl

import (
	"log/slog"
	"sync"

	crawler "github.com/obeone/crawler-to-md"
	"github.com/obeone/crawler-to-md/bloom"
)

// Bloom filter sizing for the visited-set pre-check.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Compile-time interface verification.
var _ crawler.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO frontier with enqueue-time deduplication.
// The check-and-mark step is a single critical section, so two workers can
// never both enqueue the same canonical URL. Discovery-order indices are
// assigned synchronously with enqueue, never with fetch completion, which
// keeps output ordering deterministic under concurrent fetching.
type Frontier struct {
	mu       sync.Mutex
	scope    crawler.Scope
	maxPages int
	logger   *slog.Logger

	quick *bloom.Filter  // probabilistic pre-check; the index map is authoritative
	index map[string]int // canonical URL → discovery-order position
	queue []string
	head  int
}

// NewFrontier creates a frontier enforcing the given scope and page limit.
func NewFrontier(scope crawler.Scope, maxPages int, logger *slog.Logger) *Frontier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Frontier{
		scope:    scope,
		maxPages: maxPages,
		logger:   logger,
		quick:    bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		index:    make(map[string]int),
	}
}

// Enqueue offers a raw URL to the frontier. Rejections are silent drops:
// unparsable URLs, duplicates, out-of-scope links, and anything past the page
// limit all return false without error.
func (f *Frontier) Enqueue(rawURL string, discoveredFrom string) bool {
	canonical, err := crawler.Canonicalize(rawURL)
	if err != nil {
		f.logger.Debug("drop link", "url", rawURL, "from", discoveredFrom, "reason", "unparsable")
		return false
	}
	if !f.scope.Allows(canonical) {
		f.logger.Debug("drop link", "url", canonical, "from", discoveredFrom, "reason", "out of scope")
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.quick.Test(canonical) {
		if _, ok := f.index[canonical]; ok {
			return false
		}
	}
	if len(f.index) >= f.maxPages {
		f.logger.Debug("drop link", "url", canonical, "reason", "page limit reached")
		return false
	}

	f.index[canonical] = len(f.index)
	f.quick.Add(canonical)
	f.queue = append(f.queue, canonical)
	return true
}

// Next pops the earliest-enqueued pending URL (FIFO, breadth-first order)
// together with its discovery-order index.
func (f *Frontier) Next() (string, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head >= len(f.queue) {
		return "", 0, false
	}
	u := f.queue[f.head]
	f.head++
	return u, f.index[u], true
}

// Len returns the number of pending URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// Seen reports whether a URL has ever been accepted into the frontier.
func (f *Frontier) Seen(rawURL string) bool {
	canonical, err := crawler.Canonicalize(rawURL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.quick.Test(canonical) {
		return false
	}
	_, ok := f.index[canonical]
	return ok
}
