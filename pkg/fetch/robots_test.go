package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

const disallowPrivate = `User-agent: *
Disallow: /private
`

func gateForServer(t *testing.T, server *httptest.Server) *RobotsGate {
	t.Helper()
	f := newFetcher(testConfig(), 10)
	gate := NewRobotsGate(f, testLogger())
	base, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parsing server URL: %v", err)
	}
	gate.Load(context.Background(), base)
	return gate
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}

func TestRobotsGate_EnforcesDisallow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, disallowPrivate)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gate := gateForServer(t, server)

	if gate.Allowed(mustURL(t, server.URL+"/private")) {
		t.Error("expected /private to be disallowed")
	}
	if gate.Allowed(mustURL(t, server.URL+"/private/page")) {
		t.Error("expected /private/page to be disallowed")
	}
	if !gate.Allowed(mustURL(t, server.URL+"/public")) {
		t.Error("expected /public to be allowed")
	}
}

func TestRobotsGate_MissingRobotsIsPermissive(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	gate := gateForServer(t, server)

	if !gate.Allowed(mustURL(t, server.URL+"/anything")) {
		t.Error("expected permissive gate when robots.txt is missing")
	}
}

func TestRobotsGate_UnreachableHostIsPermissive(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // robots fetch will fail at transport level

	f := newFetcher(testConfig(), 10)
	gate := NewRobotsGate(f, testLogger())
	gate.Load(context.Background(), mustURL(t, server.URL))

	if !gate.Allowed(mustURL(t, server.URL+"/anything")) {
		t.Error("expected permissive gate when robots.txt fetch fails")
	}
}

func TestRobotsGate_NoLoadIsPermissive(t *testing.T) {
	f := newFetcher(testConfig(), 10)
	gate := NewRobotsGate(f, testLogger())

	if !gate.Allowed(mustURL(t, "https://example.test/private")) {
		t.Error("expected permissive gate before Load")
	}
}
