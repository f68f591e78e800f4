package parse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/RohithRamesh28/onlycrawls/pkg/utils"
)

// NormalizeURL standardizes a URL for visited-set comparison and storage.
// It removes the fragment and trailing slashes from the path. Query strings
// are preserved since they may address distinct pages.
// Does not modify the input *url.URL.
func NormalizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	// Work on a copy
	normalized := *u

	normalized.Fragment = ""
	normalized.Path = strings.TrimRight(normalized.Path, "/")

	return normalized.String()
}

// ResolveAndNormalize resolves href (possibly relative) against the page URL
// and returns the normalized absolute string plus the resolved URL.
// Returns an error for hrefs that cannot be parsed.
func ResolveAndNormalize(pageURL *url.URL, href string) (string, *url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", nil, fmt.Errorf("%w: href '%s': %v", utils.ErrParsing, href, err)
	}
	resolved := pageURL.ResolveReference(ref)
	return NormalizeURL(resolved), resolved, nil
}

// IsSameDomain reports whether u belongs to the crawl's base domain.
// A URL with no network location (relative before resolution) counts as internal.
func IsSameDomain(u *url.URL, baseHost string) bool {
	return u.Host == "" || u.Host == baseHost
}
