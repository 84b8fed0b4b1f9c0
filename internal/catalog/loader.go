package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const (
	// LoadFailedMessage is what visitors see when the feed cannot be fetched.
	LoadFailedMessage = "We could not load products right now."

	defaultTimeout       = 10 * time.Second
	maxFeedBytes   int64 = 8 << 20
	errorBodyLimit int64 = 1024
)

type loadRecorder interface {
	ObserveCatalogLoad(ok bool, duration time.Duration)
}

// Loader fetches the product feed over HTTP and caches successful results.
type Loader struct {
	httpClient *http.Client
	feedURL    string
	ttl        time.Duration
	metrics    loadRecorder
	logg       *logger.Logger
	now        func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	cached  []Product
	expires time.Time
}

// Option configures optional loader behavior.
type Option func(*Loader)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.httpClient = client
		}
	}
}

// WithCacheTTL sets how long a successful load is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		if ttl >= 0 {
			l.ttl = ttl
		}
	}
}

// WithMetrics records each fetch.
func WithMetrics(m loadRecorder) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithLogger sets the logger used for skipped entries and failed fetches.
func WithLogger(logg *logger.Logger) Option {
	return func(l *Loader) {
		if logg != nil {
			l.logg = logg
		}
	}
}

// NewLoader builds a loader for the feed at path resolved against baseURL.
func NewLoader(baseURL, path string, opts ...Option) (*Loader, error) {
	feedURL, err := resolveFeedURL(baseURL, path)
	if err != nil {
		return nil, err
	}
	l := &Loader{
		httpClient: &http.Client{Timeout: defaultTimeout},
		feedURL:    feedURL,
		logg:       logger.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

func resolveFeedURL(baseURL, path string) (string, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("invalid catalog base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("catalog base url must be absolute: %q", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	ref, err := url.Parse(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("invalid catalog path: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// FeedURL is the absolute address the loader fetches.
func (l *Loader) FeedURL() string {
	return l.feedURL
}

// Load returns the product list. Concurrent callers share one fetch, successful fetches
// are reused until the cache TTL lapses, and failures are returned as dependency errors
// without being cached or retried. A caller whose ctx ends stops waiting; the shared fetch
// keeps running for the others.
func (l *Loader) Load(ctx context.Context) ([]Product, error) {
	if products, ok := l.fromCache(); ok {
		return products, nil
	}
	ch := l.group.DoChan("feed", func() (interface{}, error) {
		if products, ok := l.fromCache(); ok {
			return products, nil
		}
		// Shared by every waiter; outlives any single caller.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.fetchTimeout())
		defer cancel()
		return l.fetch(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneProducts(res.Val.([]Product)), nil
	}
}

func (l *Loader) fetchTimeout() time.Duration {
	if l.httpClient.Timeout > 0 {
		return l.httpClient.Timeout
	}
	return defaultTimeout
}

// Invalidate drops the cached feed.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.expires = time.Time{}
	l.mu.Unlock()
}

func (l *Loader) fromCache() ([]Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.cached == nil || !l.now().Before(l.expires) {
		return nil, false
	}
	return cloneProducts(l.cached), true
}

func (l *Loader) fetch(ctx context.Context) ([]Product, error) {
	start := l.now()
	products, err := l.fetchFeed(ctx)
	if l.metrics != nil {
		l.metrics.ObserveCatalogLoad(err == nil, l.now().Sub(start))
	}
	if err != nil {
		l.logg.Error(l.logg.WithField(ctx, "feed_url", l.feedURL), "catalog.load_failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, LoadFailedMessage)
	}
	if l.ttl > 0 {
		l.mu.Lock()
		l.cached = products
		l.expires = l.now().Add(l.ttl)
		l.mu.Unlock()
	}
	return products, nil
}

func (l *Loader) fetchFeed(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute feed request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, fmt.Errorf("feed status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	products, skipped, err := decodeFeed(body)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		l.logg.Warn(l.logg.WithField(ctx, "skipped", skipped), "catalog.invalid_products_skipped")
	}
	return products, nil
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	copy(out, in)
	return out
}
