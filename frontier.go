package crawler

// Frontier manages the crawl queue: pending canonical URLs in FIFO order plus
// the visited set. A URL joins the visited set at the moment it is enqueued,
// not when it is fetched, so concurrent discovery of the same link never
// produces duplicate queue entries.
type Frontier interface {
	// Enqueue offers a raw URL discovered on discoveredFrom (empty for
	// seeds). It returns false, without error, when the URL fails to parse,
	// has already been seen, falls outside the scope, or the page limit has
	// been reached. Accepted URLs are canonicalized, marked visited, and
	// assigned the next discovery-order index.
	Enqueue(rawURL string, discoveredFrom string) bool

	// Next pops the earliest-enqueued pending URL and its discovery-order
	// index. ok is false when the queue is empty.
	Next() (url string, position int, ok bool)

	// Len returns the number of pending URLs.
	Len() int

	// Seen reports whether a URL has been enqueued (pending or processed).
	Seen(rawURL string) bool
}
