package fetch

import (
	"context"
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// robotsAgent is the user-agent the gate answers for.
const robotsAgent = "*"

// RobotsGate answers whether a URL may be fetched under the base domain's
// robots.txt wildcard rules. The policy is loaded once at crawl start; a
// missing or malformed robots.txt leaves the gate permissive (fail-open).
type RobotsGate struct {
	fetcher *Fetcher
	log     *logrus.Entry

	mu   sync.RWMutex
	data *robotstxt.RobotsData // nil means "allow everything"
}

// NewRobotsGate creates a permissive gate. Call Load to apply a policy.
func NewRobotsGate(fetcher *Fetcher, log *logrus.Entry) *RobotsGate {
	return &RobotsGate{
		fetcher: fetcher,
		log:     log,
	}
}

// Load fetches and parses /robots.txt at the base URL's host. Best-effort:
// all failures are logged and leave the gate permissive.
func (g *RobotsGate) Load(ctx context.Context, baseURL *url.URL) {
	robotsURL := &url.URL{Scheme: baseURL.Scheme, Host: baseURL.Host, Path: "/robots.txt"}
	robotsLog := g.log.WithField("robots_url", robotsURL.String())

	body, ok := g.fetcher.FetchRaw(ctx, robotsURL.String())
	if !ok {
		robotsLog.Warn("robots.txt not found or failed, allowing everything")
		return
	}

	data, err := robotstxt.FromString(body)
	if err != nil {
		robotsLog.Warnf("Error parsing robots.txt, allowing everything: %v", err)
		return
	}

	g.mu.Lock()
	g.data = data
	g.mu.Unlock()
	robotsLog.Info("robots.txt found and loaded")
}

// Allowed reports whether the wildcard agent may fetch u.
// Returns true when no policy is loaded.
func (g *RobotsGate) Allowed(u *url.URL) bool {
	g.mu.RLock()
	data := g.data
	g.mu.RUnlock()

	if data == nil {
		return true
	}
	return data.TestAgent(u.RequestURI(), robotsAgent)
}
