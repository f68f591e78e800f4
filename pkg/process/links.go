package process

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/RohithRamesh28/onlycrawls/pkg/fetch"
	"github.com/RohithRamesh28/onlycrawls/pkg/parse"
)

// LinkExtractor finds same-domain candidate URLs in fetched page content.
type LinkExtractor struct {
	gate     *fetch.RobotsGate
	baseHost string // network location that bounds the crawl
	log      *logrus.Entry
}

// NewLinkExtractor creates a LinkExtractor scoped to baseHost.
func NewLinkExtractor(gate *fetch.RobotsGate, baseHost string, log *logrus.Entry) *LinkExtractor {
	return &LinkExtractor{
		gate:     gate,
		baseHost: baseHost,
		log:      log,
	}
}

// Extract returns the set of candidate URLs reachable from anchor elements
// in html, resolved against pageURL and normalized (fragment and trailing
// slash stripped). A candidate is kept only if it is same-domain, its path
// does not end in a denylisted extension, and the robots gate permits it.
// Malformed anchors are skipped individually; extraction is deterministic
// for identical input.
func (le *LinkExtractor) Extract(html string, pageURL *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		le.log.WithField("url", pageURL.String()).Warnf("Skipping link extraction, HTML parse failed: %v", err)
		return nil
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, element *goquery.Selection) {
		href, exists := element.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return // Skip empty hrefs
		}

		normalized, resolved, parseErr := parse.ResolveAndNormalize(pageURL, href)
		if parseErr != nil {
			le.log.Debugf("Skipping invalid link href '%s': %v", href, parseErr)
			return // Skip unparseable links, extraction continues
		}

		// Anchors resolve to the page scheme; anything else (mailto:, tel:,
		// javascript:) is not fetchable.
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if !parse.IsSameDomain(resolved, le.baseHost) {
			return // Skip external domains
		}
		if !parse.IsRelevantURL(resolved.Path) {
			return // Skip assets, archives, media, data files
		}
		if !le.gate.Allowed(resolved) {
			le.log.Debugf("Skipping robots-disallowed link: %s", normalized)
			return
		}

		if _, found := seen[normalized]; !found {
			seen[normalized] = struct{}{}
			links = append(links, normalized)
		}
	})

	return links
}
