package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	crawler "github.com/obeone/crawler-to-md"
)

// Compile-time interface verification.
var _ crawler.PageStore = (*PageStore)(nil)

// PageStore implements crawler.PageStore using SQLite. Records are keyed by
// canonical URL; a second Store for the same URL replaces the first.
type PageStore struct {
	db *DB
}

// NewPageStore creates a new PageStore.
func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db}
}

// Store persists a record, replacing any previous record for the URL.
func (s *PageStore) Store(ctx context.Context, record *crawler.PageRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return crawler.Errorf(crawler.ECACHE, "encode metadata for %s: %v", record.URL, err)
	}
	links := record.Links
	if links == nil {
		links = []string{}
	}
	encodedLinks, err := json.Marshal(links)
	if err != nil {
		return crawler.Errorf(crawler.ECACHE, "encode links for %s: %v", record.URL, err)
	}

	fetchedAt := record.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pages (url, html, content, metadata, links, outcome, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.URL, record.HTML, record.Content, string(metadata), string(encodedLinks),
		string(record.Outcome), record.ContentHash, fetchedAt.Format(time.RFC3339))
	if err != nil {
		return crawler.Errorf(crawler.ECACHE, "store %s: %v", record.URL, err)
	}
	return nil
}

// Lookup returns the cached record for a canonical URL. A miss is ENOTFOUND;
// any storage failure is ECACHE.
func (s *PageStore) Lookup(ctx context.Context, canonicalURL string) (*crawler.PageRecord, error) {
	var (
		rec       crawler.PageRecord
		metadata  string
		links     string
		outcome   string
		fetchedAt string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT url, html, content, metadata, links, outcome, content_hash, fetched_at
		FROM pages
		WHERE url = ?
	`, canonicalURL).Scan(&rec.URL, &rec.HTML, &rec.Content, &metadata, &links,
		&outcome, &rec.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, crawler.Errorf(crawler.ENOTFOUND, "no cached record for %q", canonicalURL)
	}
	if err != nil {
		return nil, crawler.Errorf(crawler.ECACHE, "lookup %s: %v", canonicalURL, err)
	}

	rec.Outcome = crawler.Outcome(outcome)
	if err := json.Unmarshal([]byte(metadata), &rec.Metadata); err != nil {
		return nil, crawler.Errorf(crawler.ECACHE, "decode metadata of %s: %v", canonicalURL, err)
	}
	if rec.Metadata.Categories == nil {
		rec.Metadata.Categories = []string{}
	}
	if rec.Metadata.Tags == nil {
		rec.Metadata.Tags = []string{}
	}
	if err := json.Unmarshal([]byte(links), &rec.Links); err != nil {
		return nil, crawler.Errorf(crawler.ECACHE, "decode links of %s: %v", canonicalURL, err)
	}
	if rec.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt); err != nil {
		return nil, crawler.Errorf(crawler.ECACHE, "parse fetched_at of %s: %v", canonicalURL, err)
	}
	return &rec, nil
}

// Close closes the underlying database.
func (s *PageStore) Close() error {
	return s.db.Close()
}
