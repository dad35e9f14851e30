package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/draftdesk/factcheck/internal/cache"
	"github.com/draftdesk/factcheck/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Fetch.RespectRobots = false
	cfg.Fetch.RequestsPerSecond = 1000
	cfg.Fetch.Burst = 100
	return cfg
}

func TestFetcher_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected User-Agent header")
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Revenue grew 14% to $5 billion."))
	}))
	defer server.Close()

	fetcher := New(testConfig(), nil)

	text, err := fetcher.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "Revenue grew 14% to $5 billion." {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestFetcher_HTMLVisibleText(t *testing.T) {
	page := `<!DOCTYPE html><html><head>
		<title>Ignored</title>
		<script>var tracking = true;</script>
		<style>p { color: red; }</style>
	</head><body>
		<h1>Company Reports Record Quarter</h1>
		<p>Revenue grew 14% to $5 billion.</p>
		<p>The CEO said "demand remains robust."</p>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := New(testConfig(), nil)

	text, err := fetcher.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(text, "Revenue grew 14% to $5 billion.") {
		t.Errorf("Expected visible text extracted, got %q", text)
	}
	if strings.Contains(text, "tracking") || strings.Contains(text, "color: red") {
		t.Errorf("Expected scripts and styles skipped, got %q", text)
	}
	if !strings.Contains(text, "\n") {
		t.Error("Expected block boundaries to become newlines")
	}
}

func TestFetcher_CacheHit(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("cached source document text"))
	}))
	defer server.Close()

	docCache := cache.NewMemoryCache(time.Minute, time.Minute)
	fetcher := New(testConfig(), docCache)

	for i := 0; i < 3; i++ {
		text, err := fetcher.FetchText(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
		if text != "cached source document text" {
			t.Errorf("Unexpected text %q", text)
		}
	}

	if hits != 1 {
		t.Errorf("Expected 1 origin hit, got %d", hits)
	}
}

func TestFetcher_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := New(testConfig(), nil)

	if _, err := fetcher.FetchText(context.Background(), server.URL); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestFetcher_BodySizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("a", 5000)))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.HTTP.MaxBodyBytes = 1000
	fetcher := New(cfg, nil)

	text, err := fetcher.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(text) != 1000 {
		t.Errorf("Expected body capped at 1000 bytes, got %d", len(text))
	}
}

func TestFetcher_RobotsDisallow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/"))
	})
	mux.HandleFunc("/private/doc", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("should never be served"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testConfig()
	cfg.Fetch.RespectRobots = true
	fetcher := New(cfg, nil)

	if _, err := fetcher.FetchText(context.Background(), server.URL+"/private/doc"); err == nil {
		t.Error("Expected fetch to be disallowed by robots.txt")
	}
}

func TestLooksLikeHTML(t *testing.T) {
	if !looksLikeHTML("<!DOCTYPE html><html><body>x</body></html>") {
		t.Error("Expected doctype to be detected")
	}
	if looksLikeHTML("Plain press release text with no markup.") {
		t.Error("Expected plain text not to be detected as HTML")
	}
}
