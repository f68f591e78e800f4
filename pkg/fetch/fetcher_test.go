package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/RohithRamesh28/onlycrawls/pkg/config"
)

const longBody = "<html><body>This page has more than one hundred characters of real content so it clears the minimum content floor applied by the fetcher.</body></html>"

// testConfig returns a validated AppConfig suitable for tests
func testConfig() *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.Validate()
	return cfg
}

// testLogger returns a logger that discards output
func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newFetcher(cfg *config.AppConfig, capacity int64) *Fetcher {
	client := &http.Client{Timeout: cfg.HTTPClientSettings.Timeout}
	return NewFetcher(client, semaphore.NewWeighted(capacity), cfg, testLogger())
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != config.DefaultUserAgent {
			t.Errorf("expected User-Agent %q, got %q", config.DefaultUserAgent, got)
		}
		io.WriteString(w, longBody)
	}))
	t.Cleanup(server.Close)

	f := newFetcher(testConfig(), 10)
	body, ok := f.Fetch(context.Background(), server.URL)

	if !ok {
		t.Fatal("expected content, got none")
	}
	if body != longBody {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestFetch_BodyBelowContentFloor(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short body", "tiny"},
		{"empty body", ""},
		{"whitespace padded short body", "   ok   \n\n\t  " + strings.Repeat(" ", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			t.Cleanup(server.Close)

			f := newFetcher(testConfig(), 10)
			if _, ok := f.Fetch(context.Background(), server.URL); ok {
				t.Error("expected no content for body below floor")
			}
		})
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			io.WriteString(w, longBody)
		}))

		f := newFetcher(testConfig(), 10)
		if _, ok := f.Fetch(context.Background(), server.URL); ok {
			t.Errorf("expected no content for status %d", status)
		}
		server.Close()
	}
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	f := newFetcher(testConfig(), 10)
	if _, ok := f.Fetch(context.Background(), server.URL); ok {
		t.Error("expected no content on transport error")
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		io.WriteString(w, longBody)
	}))
	t.Cleanup(server.Close)

	cfg := testConfig()
	cfg.HTTPClientSettings.Timeout = 50 * time.Millisecond
	f := newFetcher(cfg, 10)

	if _, ok := f.Fetch(context.Background(), server.URL); ok {
		t.Error("expected no content on timeout")
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, longBody)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	f := newFetcher(testConfig(), 10)
	body, ok := f.Fetch(context.Background(), server.URL+"/start")

	if !ok {
		t.Fatal("expected content after redirect")
	}
	if body != longBody {
		t.Errorf("unexpected body after redirect: %q", body)
	}
}

func TestFetchRaw_NoContentFloor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "User-agent: *\n")
	}))
	t.Cleanup(server.Close)

	f := newFetcher(testConfig(), 10)
	body, ok := f.FetchRaw(context.Background(), server.URL)

	if !ok {
		t.Fatal("expected raw content")
	}
	if body != "User-agent: *\n" {
		t.Errorf("unexpected raw body: %q", body)
	}
}

func TestFetch_SemaphoreCapsConcurrency(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		io.WriteString(w, longBody)
	}))
	t.Cleanup(server.Close)

	f := newFetcher(testConfig(), 1) // cap of one in-flight fetch

	var wg sync.WaitGroup
	var fetched atomic.Int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := f.Fetch(context.Background(), server.URL); ok {
				fetched.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := maxInFlight.Load(); got > 1 {
		t.Errorf("semaphore failed: observed %d concurrent fetches", got)
	}
	if got := fetched.Load(); got != 5 {
		t.Errorf("cap throttled but starved: fetched %d of 5", got)
	}
}
