// Package crawler turns a bounded region of a website into two durable
// artifacts: a single heading-normalized Markdown document and a parallel
// JSON document of per-page records. Crawls are idempotent and resumable
// through a persistent page cache keyed by canonical URL.
//
// This package contains domain types and interfaces following the Standard
// Package Layout. Implementations live in subdirectories named after their
// primary dependency (e.g., sqlite/, trafilatura/, goquery/).
package crawler
