// Package crawl provides the crawl engine: frontier management, fetch
// scheduling, rate limiting, and orchestration of fetching, extraction,
// conversion, and caching.
package crawl

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	crawler "github.com/obeone/crawler-to-md"
	"golang.org/x/sync/errgroup"
)

// Engine coordinates a crawl run. All collaborator fields except Links and
// Limiter are required; Links may be nil for list-mode-only use and Limiter
// is built from the job when unset.
type Engine struct {
	Fetcher     crawler.Fetcher
	Extractor   crawler.Extractor
	Converter   crawler.Converter
	Links       crawler.LinkExtractor
	Store       crawler.PageStore
	Limiter     *Limiter
	Concurrency int
	Logger      *slog.Logger
}

// Result holds the outcome of a crawl run. Records are in discovery order
// and include failed pages; use Succeeded for the output-eligible subset.
type Result struct {
	Records []*crawler.PageRecord
	Fetched int
	Cached  int
	Failed  int
	Bytes   int
}

// Succeeded returns the records eligible for final output, in discovery
// order.
func (r *Result) Succeeded() []*crawler.PageRecord {
	out := make([]*crawler.PageRecord, 0, len(r.Records))
	for _, rec := range r.Records {
		if !rec.Outcome.Failed() {
			out = append(out, rec)
		}
	}
	return out
}

// SeedRecord returns the record for the first seed URL, or nil if the run
// produced no records.
func (r *Result) SeedRecord() *crawler.PageRecord {
	for _, rec := range r.Records {
		if rec.Position == 0 {
			return rec
		}
	}
	return nil
}

// task pairs a pending canonical URL with its discovery-order index.
type task struct {
	url      string
	position int
}

// pageResult is the outcome of processing one URL. fatal is non-nil only for
// errors that must abort the whole run (cache failures).
type pageResult struct {
	record *crawler.PageRecord
	cached bool
	fatal  error
}

// run carries per-run state shared between the coordinator and workers.
type run struct {
	engine   *Engine
	frontier *Frontier
	limiter  *Limiter
	scope    crawler.Scope
	discover bool
	logger   *slog.Logger
}

// Run executes a crawl job to completion and returns its records in
// discovery order. Per-page failures are contained: they mark the record
// failed and the crawl continues. Cache errors abort the run.
func (e *Engine) Run(ctx context.Context, job *crawler.CrawlJob) (*Result, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", uuid.New().String())

	limiter := e.Limiter
	if limiter == nil {
		limiter = NewLimiter(job.RateLimit, job.Delay)
	}

	r := &run{
		engine:   e,
		frontier: NewFrontier(job.Scope(), job.MaxPages, logger),
		limiter:  limiter,
		scope:    job.Scope(),
		discover: job.Discover(),
		logger:   logger,
	}

	seeded := 0
	for _, seed := range job.Seeds() {
		if r.frontier.Enqueue(seed, "") {
			seeded++
		} else {
			logger.Warn("seed rejected", "url", seed)
		}
	}
	if seeded == 0 {
		return nil, crawler.Errorf(crawler.ECONFIG, "no seed URL within scope")
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	if !r.discover {
		return r.runList(ctx, concurrency)
	}
	return r.runWalk(ctx, concurrency)
}

// runList processes a fixed URL list concurrently. The frontier already
// holds every URL, so no coordinator is needed.
func (r *run) runList(ctx context.Context, concurrency int) (*Result, error) {
	var tasks []task
	for {
		u, pos, ok := r.frontier.Next()
		if !ok {
			break
		}
		tasks = append(tasks, task{url: u, position: pos})
	}

	slots := make([]*crawler.PageRecord, len(tasks))
	var mu sync.Mutex
	result := &Result{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, tk := range tasks {
		g.Go(func() error {
			res := r.process(gctx, tk)
			if res.fatal != nil {
				return res.fatal
			}
			mu.Lock()
			slots[i] = res.record
			r.tally(result, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, rec := range slots {
		if rec != nil {
			result.Records = append(result.Records, rec)
		}
	}
	return result, nil
}

// runWalk performs recursive link-following with a bounded worker pool. A
// coordinator loop dispatches frontier URLs to workers and feeds discovered
// links back; completion order never affects output order because positions
// were fixed at enqueue time.
func (r *run) runWalk(ctx context.Context, concurrency int) (*Result, error) {
	workCh := make(chan task, concurrency)
	resultCh := make(chan pageResult)

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tk := range workCh {
				res := r.process(wctx, tk)
				select {
				case resultCh <- res:
				case <-wctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	result := &Result{}
	var fatal error
	pending := 0
	var next *task
	if u, pos, ok := r.frontier.Next(); ok {
		next = &task{url: u, position: pos}
	}

coordinator:
	for {
		if next == nil && pending == 0 {
			break
		}
		if wctx.Err() != nil {
			break
		}

		if next != nil {
			select {
			case <-wctx.Done():
				break coordinator
			case workCh <- *next:
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				fatal = r.handle(result, res)
			}
		} else {
			select {
			case <-wctx.Done():
				break coordinator
			case res, ok := <-resultCh:
				if !ok {
					break coordinator
				}
				pending--
				fatal = r.handle(result, res)
			}
		}

		if fatal != nil {
			break
		}
		if next == nil {
			if u, pos, ok := r.frontier.Next(); ok {
				next = &task{url: u, position: pos}
			}
		}
	}

	close(workCh)
	cancel()
	for range resultCh {
		// discard results from workers that were already in flight
	}

	if fatal != nil {
		return nil, fatal
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].Position < result.Records[j].Position
	})
	return result, nil
}

// handle folds one worker result into the accumulating run state: replaying
// the record's link set into the frontier and updating counters. Returns a
// non-nil error only for fatal failures.
func (r *run) handle(result *Result, res pageResult) error {
	if res.fatal != nil {
		return res.fatal
	}

	if r.discover {
		for _, link := range res.record.Links {
			r.frontier.Enqueue(link, res.record.URL)
		}
	}

	result.Records = append(result.Records, res.record)
	r.tally(result, res)
	return nil
}

func (r *run) tally(result *Result, res pageResult) {
	if res.cached {
		result.Cached++
	} else {
		result.Fetched++
	}
	if res.record.Outcome.Failed() {
		result.Failed++
		r.logger.Warn("skip page",
			"url", res.record.URL,
			"outcome", string(res.record.Outcome),
		)
	} else {
		result.Bytes += len(res.record.Content)
	}
}

// process resolves one URL to a PageRecord: cache lookup first, then fetch,
// extract, convert, link discovery, and store. Only successful records are
// persisted so failed pages are retried on later runs.
func (r *run) process(ctx context.Context, tk task) pageResult {
	e := r.engine

	cached, err := e.Store.Lookup(ctx, tk.url)
	if err == nil {
		cached.Position = tk.position
		r.logger.Debug("cache hit", "url", tk.url)
		return pageResult{record: cached, cached: true}
	}
	if crawler.ErrorCode(err) != crawler.ENOTFOUND {
		return pageResult{fatal: err}
	}

	rec := &crawler.PageRecord{
		URL:      tk.url,
		Position: tk.position,
		Metadata: crawler.NewMetadata(),
		Links:    []string{},
	}

	if err := r.limiter.Wait(ctx); err != nil {
		rec.Outcome = crawler.OutcomeNetworkError
		return pageResult{record: rec}
	}

	begin := time.Now()
	status, body, err := e.Fetcher.Fetch(ctx, tk.url)
	rec.FetchedAt = time.Now().UTC()
	_ = r.limiter.Pause(ctx)

	if err != nil {
		if status > 0 {
			rec.Outcome = crawler.OutcomeHTTPError
		} else {
			rec.Outcome = crawler.OutcomeNetworkError
		}
		r.logger.Info("fetch failed",
			"url", tk.url,
			"status", status,
			"error", crawler.ErrorMessage(err),
		)
		return pageResult{record: rec}
	}
	rec.HTML = body
	r.logger.Debug("fetched", "url", tk.url, "status", status, "duration", time.Since(begin))

	extracted, err := e.Extractor.Extract(body, tk.url)
	if err != nil {
		rec.Outcome = crawler.OutcomeExtractError
		r.logger.Info("extraction failed", "url", tk.url, "error", crawler.ErrorMessage(err))
		return pageResult{record: rec}
	}

	markdown, err := e.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		rec.Outcome = crawler.OutcomeExtractError
		r.logger.Info("conversion failed", "url", tk.url, "error", crawler.ErrorMessage(err))
		return pageResult{record: rec}
	}

	rec.Content = markdown
	rec.Metadata = extracted.Metadata
	rec.Outcome = crawler.OutcomeSuccess
	rec.ContentHash = ContentHash(markdown)

	if r.discover && e.Links != nil {
		links, err := e.Links.ExtractLinks(body, tk.url)
		if err != nil {
			r.logger.Debug("link extraction failed", "url", tk.url, "error", err)
		}
		for _, link := range links {
			canonical, err := crawler.Canonicalize(link)
			if err != nil || !r.scope.Allows(canonical) {
				continue
			}
			rec.Links = append(rec.Links, canonical)
		}
	}

	if err := e.Store.Store(ctx, rec); err != nil {
		return pageResult{fatal: err}
	}
	return pageResult{record: rec}
}
