package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/chronomap/internal/model"
)

func testFetcher() *ArchiveFetcher {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.HTTP.RatePerSec = 1000 // no throttling in tests
	cfg.HTTP.Burst = 1000
	return NewArchiveFetcher(cfg.HTTP, cfg.Cache)
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	f := testFetcher()
	page, err := f.Fetch(context.Background(), server.URL+"/maps")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected page: %s", page)
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		_, _ = fmt.Fprint(w, "<html>secret</html>")
	}))
	defer server.Close()

	f := testFetcher()
	if _, err := f.Fetch(context.Background(), server.URL+"/private/map1"); err == nil {
		t.Fatal("Expected robots.txt disallow error")
	}
	if _, err := f.Fetch(context.Background(), server.URL+"/public/map1"); err != nil {
		t.Errorf("Allowed path should fetch: %v", err)
	}
}

func TestFetch_CachedSecondCall(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits.Add(1)
		_, _ = fmt.Fprint(w, "<html>page</html>")
	}))
	defer server.Close()

	f := testFetcher()
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), server.URL+"/index"); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 upstream hit with caching, got %d", hits.Load())
	}
}

func TestFetchWithRetry_TransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()

	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	defer func() { fetchSleepFunc = origSleep }()

	f := testFetcher()
	page, err := f.FetchWithRetry(context.Background(), server.URL+"/index")
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if page != "<html>OK</html>" {
		t.Errorf("Unexpected page: %s", page)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_PermanentFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := testFetcher()
	if _, err := f.FetchWithRetry(context.Background(), server.URL+"/gone"); err == nil {
		t.Fatal("Expected error for 404")
	}
	if attempts.Load() != 1 {
		t.Errorf("404 must not be retried, got %d attempts", attempts.Load())
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		err       string
		retryable bool
	}{
		{"unexpected status: 503 Service Unavailable", true},
		{"unexpected status: 429 Too Many Requests", true},
		{"unexpected status: 404 Not Found", false},
		{"unexpected status: 403 Forbidden", false},
		{"fetch: connection refused", true},
		{"create request: invalid URL", false},
	}
	for _, tt := range tests {
		err := fmt.Errorf("%s", tt.err)
		if got := isRetryableFetchError(err); got != tt.retryable {
			t.Errorf("isRetryableFetchError(%q) = %v, want %v", tt.err, got, tt.retryable)
		}
	}
	if isRetryableFetchError(nil) {
		t.Error("nil error is not retryable")
	}
}

func TestParseIndex(t *testing.T) {
	page := `<html><body>
		<a href="/item/map-of-prussia-1871.html">Topographic map of Prussia, 1871</a>
		<a href="/item/siam-boundary.html">Boundary chart of Siam</a>
		<a href="/about.html">About this archive</a>
		<a href="/item/map-of-prussia-1871.html">Topographic map of Prussia, 1871</a>
	</body></html>`

	base, _ := url.Parse("https://archive.example/collections/")
	maps, err := parseIndex(page, base, "Example Archive")
	if err != nil {
		t.Fatalf("parseIndex: %v", err)
	}

	if len(maps) != 2 {
		t.Fatalf("Expected 2 map records (dedup, non-map links skipped), got %d", len(maps))
	}
	first := maps[0]
	if first.MapID != "map-of-prussia-1871" {
		t.Errorf("Unexpected map ID %q", first.MapID)
	}
	if first.URL != "https://archive.example/item/map-of-prussia-1871.html" {
		t.Errorf("Relative link not resolved: %q", first.URL)
	}
	if first.Source != "Example Archive" {
		t.Errorf("Unexpected source %q", first.Source)
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	if got := NormalizeUserAgent("ChronoMap/0.1 (+https://example.org)"); got != "ChronoMap" {
		t.Errorf("NormalizeUserAgent = %q, want ChronoMap", got)
	}
}
