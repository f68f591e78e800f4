package crawler

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/RohithRamesh28/onlycrawls/pkg/config"
	"github.com/RohithRamesh28/onlycrawls/pkg/fetch"
	"github.com/RohithRamesh28/onlycrawls/pkg/models"
	"github.com/RohithRamesh28/onlycrawls/pkg/parse"
	"github.com/RohithRamesh28/onlycrawls/pkg/process"
	"github.com/RohithRamesh28/onlycrawls/pkg/queue"
	"github.com/RohithRamesh28/onlycrawls/pkg/sitemap"
	"github.com/RohithRamesh28/onlycrawls/pkg/utils"
)

// Crawler drives a depth-bounded breadth-first traversal of a single site.
// It owns the frontier, the visited set, and the result list; all three are
// scoped to one Run invocation and discarded afterwards.
//
// Deduplication is eventual, not linearizable: a unit marks its URL visited
// as its first action, so two units in the same round that discovered the
// same URL independently may both fetch it. This mirrors the accepted race
// in the original design rather than serializing all discovery behind a
// lock.
type Crawler struct {
	log     *logrus.Entry // Logger contextualized with crawl_id and base_url
	cfg     *config.AppConfig
	baseURL *url.URL
	seedURL string // Normalized base URL, used for homepage seeding

	// Core components
	frontier  *queue.Frontier
	fetcher   *fetch.Fetcher
	gate      *fetch.RobotsGate
	bootstrap *sitemap.Bootstrapper
	extractor *process.LinkExtractor

	// Concurrency control
	globalSemaphore *semaphore.Weighted

	// Visited set: URLs already dispatched for fetching. Grows monotonically.
	visitedMu sync.RWMutex
	visited   map[string]struct{}

	// Result list: successfully fetched URLs in completion order.
	resultsMu sync.Mutex
	results   []string

	fromSitemap bool // Whether the seed set came from /sitemap.xml
	seeded      int  // Number of depth-0 entries enqueued
}

// New creates and initializes a Crawler and its components. The base URL
// sets the internal-link boundary for the whole crawl; an invalid base URL
// is the one configuration error surfaced to the caller.
func New(rawBaseURL string, cfg *config.AppConfig, baseLogger *logrus.Logger) (*Crawler, error) {
	parsed, err := url.ParseRequestURI(rawBaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing '%s': %v", utils.ErrInvalidBaseURL, rawBaseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: '%s' must be an absolute http(s) URL with a host", utils.ErrInvalidBaseURL, rawBaseURL)
	}

	// Contextualize logger for this specific crawl invocation
	logger := baseLogger.WithFields(logrus.Fields{
		"crawl_id": uuid.NewString(),
		"base_url": rawBaseURL,
	})

	globalSem := semaphore.NewWeighted(int64(cfg.MaxTasks))
	httpClient := fetch.NewClient(cfg.HTTPClientSettings, baseLogger)
	fetcher := fetch.NewFetcher(httpClient, globalSem, cfg, logger)
	gate := fetch.NewRobotsGate(fetcher, logger)

	return &Crawler{
		log:             logger,
		cfg:             cfg,
		baseURL:         parsed,
		seedURL:         parse.NormalizeURL(parsed),
		frontier:        queue.NewFrontier(logger),
		fetcher:         fetcher,
		gate:            gate,
		bootstrap:       sitemap.NewBootstrapper(fetcher, logger),
		extractor:       process.NewLinkExtractor(gate, parsed.Host, logger),
		globalSemaphore: globalSem,
		visited:         make(map[string]struct{}),
	}, nil
}

// Run executes the crawl to completion: robots load, sitemap-or-homepage
// seeding, then rounds of concurrent fetch-and-expand work until the
// frontier is exhausted. Returns the successfully fetched URLs in
// completion order and the elapsed wall-clock duration.
func (c *Crawler) Run(ctx context.Context) ([]string, models.CrawlSummary) {
	start := time.Now()
	c.log.WithFields(logrus.Fields{
		"max_tasks": c.cfg.MaxTasks,
		"max_depth": c.cfg.MaxDepth,
	}).Info("Crawl starting...")

	// Robots policy load is best-effort; failure leaves the gate permissive.
	c.gate.Load(ctx, c.baseURL)

	c.seedFrontier(ctx)
	c.runRounds(ctx)

	elapsed := time.Since(start)
	results := c.snapshotResults()
	summary := models.CrawlSummary{
		BaseURL:     c.baseURL.String(),
		Seeded:      c.seeded,
		FromSitemap: c.fromSitemap,
		Fetched:     len(results),
		Visited:     c.visitedCount(),
		Duration:    elapsed,
	}
	c.log.WithFields(logrus.Fields{
		"pages_fetched": summary.Fetched,
		"urls_visited":  summary.Visited,
		"duration":      elapsed.String(),
	}).Info("CRAWL FINISHED")

	return results, summary
}

// seedFrontier enqueues the depth-0 entries: the sitemap URL set when the
// bootstrap yields one, else the homepage alone.
func (c *Crawler) seedFrontier(ctx context.Context) {
	seeds := c.bootstrap.Seed(ctx, c.baseURL)
	c.fromSitemap = len(seeds) > 0
	if !c.fromSitemap {
		seeds = []string{c.seedURL}
	}
	for _, seed := range seeds {
		c.frontier.Add(&models.WorkItem{URL: seed, Depth: 0})
	}
	c.seeded = len(seeds)
	c.log.WithFields(logrus.Fields{
		"seeds":        c.seeded,
		"from_sitemap": c.fromSitemap,
	}).Info("Frontier seeded")
}

// runRounds drains the frontier in batches of at most MaxTasks, dispatches
// one goroutine per surviving entry, and joins the whole batch before the
// next round. Entries enqueued mid-round join the next round, which keeps
// the traversal layered by depth.
func (c *Crawler) runRounds(ctx context.Context) {
	round := 0
	for c.frontier.Len() > 0 {
		if ctx.Err() != nil {
			c.log.Warnf("Crawl interrupted, stopping before next round: %v", ctx.Err())
			return
		}
		round++
		batch := c.frontier.DrainBatch(c.cfg.MaxTasks)

		var wg sync.WaitGroup
		dispatched := 0
		for _, item := range batch {
			if item.Depth > c.cfg.MaxDepth {
				continue
			}
			if c.isVisited(item.URL) {
				continue
			}
			wg.Add(1)
			dispatched++
			go func(item *models.WorkItem) {
				defer wg.Done()
				c.fetchAndExpand(ctx, item)
			}(item)
		}
		c.log.WithFields(logrus.Fields{
			"round":      round,
			"drained":    len(batch),
			"dispatched": dispatched,
		}).Debug("Round dispatched")
		wg.Wait()
	}
}

// fetchAndExpand is one unit of work: mark visited, fetch the page, record
// the result, and enqueue newly discovered links one hop deeper. Marking
// visited here (rather than under a scheduler lock) is what makes dedup
// eventual; see the type comment.
func (c *Crawler) fetchAndExpand(ctx context.Context, item *models.WorkItem) {
	c.markVisited(item.URL)

	body, ok := c.fetcher.Fetch(ctx, item.URL)
	if !ok {
		return // No content: not recorded, not retried
	}
	c.appendResult(item.URL)

	if item.Depth >= c.cfg.MaxDepth {
		return // Leaf depth: record only, no expansion
	}

	pageURL, err := url.Parse(item.URL)
	if err != nil {
		c.log.Warnf("Cannot parse fetched URL '%s' for link extraction: %v", item.URL, err)
		return
	}
	for _, link := range c.extractor.Extract(body, pageURL) {
		if c.isVisited(link) {
			continue // Best-effort skip; the dispatch check is authoritative
		}
		c.frontier.Add(&models.WorkItem{URL: link, Depth: item.Depth + 1})
	}
}

func (c *Crawler) isVisited(normalizedURL string) bool {
	c.visitedMu.RLock()
	defer c.visitedMu.RUnlock()
	_, found := c.visited[normalizedURL]
	return found
}

func (c *Crawler) markVisited(normalizedURL string) {
	c.visitedMu.Lock()
	defer c.visitedMu.Unlock()
	c.visited[normalizedURL] = struct{}{}
}

func (c *Crawler) visitedCount() int {
	c.visitedMu.RLock()
	defer c.visitedMu.RUnlock()
	return len(c.visited)
}

func (c *Crawler) appendResult(url string) {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()
	c.results = append(c.results, url)
}

func (c *Crawler) snapshotResults() []string {
	c.resultsMu.Lock()
	defer c.resultsMu.Unlock()
	out := make([]string, len(c.results))
	copy(out, c.results)
	return out
}
