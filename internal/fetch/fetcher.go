// Package fetch retrieves source documents over HTTP when a caller
// provides a URL instead of inline source text. Fetches are polite:
// robots.txt is honored, requests are rate limited per domain, and
// fetched text is cached briefly so repeated verifications of the same
// press release do not re-hit the wire.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/draftdesk/factcheck/internal/cache"
	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/util"
	"github.com/draftdesk/factcheck/internal/worker"
)

// Fetcher fetches source-document text from URLs
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache // nil disables caching
	cacheTTL   model.CacheConfig
}

// New creates a fetcher from configuration. A nil docCache disables
// caching.
func New(cfg *model.Config, docCache cache.Cache) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.Fetch.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		robots:    robots,
		limiter:   worker.NewLimiter(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Burst),
		cache:     docCache,
		cacheTTL:  cfg.Cache,
	}
}

// FetchText retrieves the URL and returns its visible text, suitable as
// sourceText for verification
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if f.cache != nil {
		if cached, found := f.cache.Get(key); found {
			return string(cached), nil
		}
	}

	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	} else if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	body, contentType, err := f.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text := body
	if strings.Contains(contentType, "html") || looksLikeHTML(body) {
		text = visibleText(body)
	}

	if f.cache != nil {
		_ = f.cache.Set(key, []byte(text), f.cacheTTL.TTL)
	}
	return text, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}
	return string(body), resp.Header.Get("Content-Type"), nil
}

func looksLikeHTML(body string) bool {
	head := strings.ToLower(body)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

// visibleText extracts text nodes from HTML, skipping scripts and styles.
// Block-level boundaries become newlines so the headline/body split and
// paragraph structure survive.
func visibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "div", "br", "h1", "h2", "h3", "h4", "li", "tr":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
