package sitemap

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/RohithRamesh28/onlycrawls/pkg/fetch"
	"github.com/RohithRamesh28/onlycrawls/pkg/parse"
)

// Bootstrapper seeds a crawl frontier from /sitemap.xml when the site
// publishes one. Any fetch or parse failure yields an empty set and the
// scheduler falls back to homepage seeding.
type Bootstrapper struct {
	fetcher *fetch.Fetcher
	log     *logrus.Entry
}

// NewBootstrapper creates a Bootstrapper
func NewBootstrapper(fetcher *fetch.Fetcher, log *logrus.Entry) *Bootstrapper {
	return &Bootstrapper{
		fetcher: fetcher,
		log:     log,
	}
}

// Seed fetches and parses the sitemap at the base URL's host and returns
// the normalized subset of location entries that are same-domain and not
// denylisted by extension. Returns nil when no usable sitemap exists.
func (b *Bootstrapper) Seed(ctx context.Context, baseURL *url.URL) []string {
	sitemapURL := &url.URL{Scheme: baseURL.Scheme, Host: baseURL.Host, Path: "/sitemap.xml"}
	smLog := b.log.WithField("sitemap_url", sitemapURL.String())

	body, ok := b.fetcher.FetchRaw(ctx, sitemapURL.String())
	if !ok {
		smLog.Info("No sitemap found. Falling back to homepage crawl.")
		return nil
	}

	var urlset parse.XMLURLSet
	if err := xml.Unmarshal([]byte(body), &urlset); err != nil {
		smLog.Warnf("Failed to parse sitemap.xml: %v", err)
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, entry := range urlset.URLs {
		loc := strings.TrimSpace(entry.Loc)
		if loc == "" {
			continue
		}
		locURL, err := url.Parse(loc)
		if err != nil {
			smLog.Debugf("Skipping unparseable sitemap entry '%s': %v", loc, err)
			continue
		}
		if !parse.IsSameDomain(locURL, baseURL.Host) {
			continue
		}
		if !parse.IsRelevantURL(locURL.Path) {
			continue
		}
		normalized := parse.NormalizeURL(locURL)
		if _, found := seen[normalized]; !found {
			seen[normalized] = struct{}{}
			urls = append(urls, normalized)
		}
	}

	smLog.Infof("sitemap.xml found (%d URLs)", len(urls))
	return urls
}
