package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"

	"github.com/ppiankov/chronomap/internal/model"
	"github.com/ppiankov/chronomap/internal/worker"
)

// ArchiveFetcher retrieves map-archive pages politely: robots.txt
// compliance, per-domain rate limiting, and a memory cache so repeated
// discovery runs do not hammer the archive.
type ArchiveFetcher struct {
	httpClient *http.Client
	robots     *RobotsChecker
	limiter    *worker.Limiter
	pages      *gocache.Cache
	userAgent  string
	maxBytes   int64
}

// NewArchiveFetcher creates a fetcher from HTTP configuration.
func NewArchiveFetcher(cfg model.HTTPConfig, cacheTTL model.CacheConfig) *ArchiveFetcher {
	return &ArchiveFetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: newProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RatePerSec, cfg.Burst),
		pages:     gocache.New(cacheTTL.MemoryTTL, 2*cacheTTL.MemoryTTL),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// Fetch retrieves one page, honoring robots.txt and the per-domain rate
// limit. Cached pages skip both.
func (f *ArchiveFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if cached, found := f.pages.Get(pageKey(rawURL)); found {
		return cached.(string), nil
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	page := string(body)
	f.pages.SetDefault(pageKey(rawURL), page)
	return page, nil
}

// DiscoverMaps fetches an archive index page and extracts map records
// from its links.
func (f *ArchiveFetcher) DiscoverMaps(ctx context.Context, indexURL, sourceName string) ([]model.MapMetadata, error) {
	page, err := f.Fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("parse index URL: %w", err)
	}

	maps, err := parseIndex(page, base, sourceName)
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return maps, nil
}

// parseIndex walks the index HTML and turns map-record links into
// catalog entries. A link qualifies when its visible text mentions a map
// or chart; the link slug becomes the stable map ID.
func parseIndex(page string, base *url.URL, sourceName string) ([]model.MapMetadata, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var maps []model.MapMetadata
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			text := strings.TrimSpace(linkText(n))
			if href != "" && looksLikeMapRecord(text) {
				ref, err := url.Parse(href)
				if err == nil {
					resolved := base.ResolveReference(ref)
					id := slugFromPath(resolved.Path)
					if id != "" && !seen[id] {
						seen[id] = true
						maps = append(maps, model.MapMetadata{
							MapID:       id,
							Source:      sourceName,
							URL:         resolved.String(),
							Description: text,
						})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return maps, nil
}

func looksLikeMapRecord(text string) bool {
	if len(text) < 10 {
		return false
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "map") || strings.Contains(lower, "chart") || strings.Contains(lower, "atlas")
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// linkText collects the visible text under an anchor
func linkText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func slugFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	last := segments[len(segments)-1]
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return strings.ToLower(last)
}

func pageKey(rawURL string) string {
	return "chronomap:page:v1:" + rawURL
}

// newProxyFunc routes requests through the configured proxies, falling
// back to the environment when none are set.
func newProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
