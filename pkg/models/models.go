package models

import "time"

// WorkItem represents a URL and the link-hop depth at which it was discovered.
// Depth 0 is reserved for seed URLs (sitemap entries or the homepage).
type WorkItem struct {
	URL   string
	Depth int
}

// CrawlSummary holds the outcome of a single crawl invocation.
type CrawlSummary struct {
	BaseURL     string
	Seeded      int           // Number of depth-0 entries (sitemap count, or 1 for homepage)
	FromSitemap bool          // Whether the seed set came from /sitemap.xml
	Fetched     int           // Successfully fetched pages (len of result list)
	Visited     int           // URLs dispatched for fetching at least once
	Duration    time.Duration // Wall-clock time of the whole crawl
}
