package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/RohithRamesh28/onlycrawls/pkg/config"
	"github.com/RohithRamesh28/onlycrawls/pkg/utils"
)

// Fetcher performs bounded HTTP GETs on behalf of the crawl. A single
// weighted semaphore caps the total number of in-flight requests across
// all callers (pages, robots.txt, sitemap) — bounded parallelism, not
// per-host politeness.
//
// Fetch never surfaces errors: any transport failure, timeout, or non-2xx
// status is logged and reported as "no content". A failed URL is not
// retried.
type Fetcher struct {
	client *http.Client
	sem    *semaphore.Weighted
	cfg    *config.AppConfig
	log    *logrus.Entry
}

// NewFetcher creates a Fetcher sharing the given global semaphore.
func NewFetcher(client *http.Client, sem *semaphore.Weighted, cfg *config.AppConfig, log *logrus.Entry) *Fetcher {
	return &Fetcher{
		client: client,
		sem:    sem,
		cfg:    cfg,
		log:    log,
	}
}

// Fetch retrieves a page body. The second return value is false when the
// URL yielded no usable content: fetch failure, non-success status, or a
// body at or below the minimum content floor (blank and error pages).
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, bool) {
	body, ok := f.get(ctx, rawURL)
	if !ok {
		return "", false
	}
	if len(strings.TrimSpace(body)) <= f.cfg.MinContentChars {
		f.log.WithFields(logrus.Fields{
			"url":            rawURL,
			"error_category": utils.CategorizeError(utils.ErrEmptyContent),
		}).Debug("Body below content floor, treating as empty")
		return "", false
	}
	f.log.WithField("url", rawURL).Info("Fetched")
	return body, true
}

// FetchRaw retrieves a document body without applying the minimum content
// floor. Used for auxiliary documents (robots.txt, sitemap.xml) where a
// short body is still meaningful.
func (f *Fetcher) FetchRaw(ctx context.Context, rawURL string) (string, bool) {
	return f.get(ctx, rawURL)
}

// get performs one semaphore-gated GET and swallows all failures.
func (f *Fetcher) get(ctx context.Context, rawURL string) (string, bool) {
	reqLog := f.log.WithField("url", rawURL)

	if err := f.sem.Acquire(ctx, 1); err != nil {
		reqLog.Warnf("Fetch aborted acquiring global semaphore: %v", err)
		return "", false
	}
	defer f.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", utils.ErrRequestCreation, err)
		reqLog.WithField("error_category", utils.CategorizeError(wrapped)).Warnf("Fetch failed creating request: %v", err)
		return "", false
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		reqLog.Warnf("Fetch failed: %v", err)
		return "", false
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqLog.WithFields(logrus.Fields{
			"status_code":    resp.StatusCode,
			"error_category": utils.CategorizeError(statusError(resp.StatusCode)),
		}).Debug("Non-success status, no content")
		return "", false
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		reqLog.Warnf("Fetch failed reading body: %v", err)
		return "", false
	}
	return string(bodyBytes), true
}

// statusError maps a non-success status code to its sentinel error class.
func statusError(code int) error {
	switch {
	case code >= 400 && code < 500:
		return fmt.Errorf("%w: status %d", utils.ErrClientHTTPError, code)
	case code >= 500:
		return fmt.Errorf("%w: status %d", utils.ErrServerHTTPError, code)
	default:
		return fmt.Errorf("%w: status %d", utils.ErrOtherHTTPError, code)
	}
}
