// Package base provides the shared HTTP client used by every upstream
// source (Wikipedia, Wikidata, Wikimedia metrics, Quarry, Google Suggest).
package base

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/infra"
	"github.com/olgasafonova/wikicell-mcp-server/metrics"
)

const (
	// DefaultTimeout for upstream requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the server to the Wikimedia APIs, which
	// require a descriptive User-Agent for tool traffic.
	DefaultUserAgent = "wikicell-mcp-server/1.0 (https://github.com/olgasafonova/wikicell-mcp-server)"

	// DefaultMaxRetry attempts per request
	DefaultMaxRetry = 3

	// MaxConcurrentRequests limits parallel upstream calls
	MaxConcurrentRequests = 5
)

// Client bundles the HTTP client with caching, rate limiting, circuit
// breaking, and request deduplication shared by all source clients.
type Client struct {
	HTTPClient     *http.Client
	Logger         *slog.Logger
	UserAgent      string
	MaxRetry       int
	Cache          *infra.Cache
	Dedup          *infra.RequestDeduplicator
	CircuitBreaker *infra.CircuitBreaker
	Semaphore      chan struct{}
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithCache sets a custom cache
func WithCache(c *infra.Cache) ClientOption {
	return func(client *Client) {
		client.Cache = c
	}
}

// WithUserAgent overrides the User-Agent header sent upstream
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		client.UserAgent = ua
	}
}

// WithTimeout replaces the default HTTP client with one using the given timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient = newHTTPClient(d)
	}
}

// WithMaxRetry sets the default retry budget for requests
func WithMaxRetry(n int) ClientOption {
	return func(client *Client) {
		client.MaxRetry = n
	}
}

// NewClient creates a base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient:     newHTTPClient(DefaultTimeout),
		Logger:         slog.Default(),
		UserAgent:      DefaultUserAgent,
		MaxRetry:       DefaultMaxRetry,
		Cache:          infra.NewCache(infra.DefaultMaxCacheEntries),
		Dedup:          infra.NewRequestDeduplicator(),
		CircuitBreaker: infra.NewCircuitBreaker(),
		Semaphore:      make(chan struct{}, MaxConcurrentRequests),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases resources held by the client
func (c *Client) Close() {
	if c.Cache != nil {
		c.Cache.Close()
	}
}

// CircuitBreakerStats returns the current circuit breaker state
func (c *Client) CircuitBreakerStats() infra.CircuitBreakerStats {
	return c.CircuitBreaker.Stats()
}

// AcquireSlot blocks until a request slot is available or ctx is canceled
func (c *Client) AcquireSlot(ctx context.Context) error {
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	default:
	}

	metrics.RateLimitWaits.Inc()
	select {
	case c.Semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting for rate limiter: %w", ctx.Err())
	}
}

// ReleaseSlot releases a request slot
func (c *Client) ReleaseSlot() {
	<-c.Semaphore
}

// CheckCircuitBreaker returns nil if requests are allowed, or ErrCircuitOpen
func (c *Client) CheckCircuitBreaker() error {
	if !c.CircuitBreaker.Allow() {
		stats := c.CircuitBreaker.Stats()
		return &infra.ErrCircuitOpen{
			State:    stats.State,
			RetryAt:  stats.LastFailure.Add(30 * time.Second),
			Failures: stats.ConsecutiveFails,
		}
	}
	return nil
}

// RequestConfig configures a single GET request
type RequestConfig struct {
	URL      string
	Accept   string // defaults to application/json; Google Suggest needs XML
	MaxRetry int    // defaults to the client's retry budget
	Source   string // upstream source label for metrics (wikipedia, wikidata, ...)
	Action   string // upstream action label for metrics (query, wbgetentities, ...)
}

// DoRequest performs a GET with circuit breaking, rate limiting, and retries.
// It returns the raw body and status code; the caller parses the payload.
func (c *Client) DoRequest(ctx context.Context, cfg RequestConfig) ([]byte, int, error) {
	if err := c.CheckCircuitBreaker(); err != nil {
		return nil, 0, err
	}

	if err := c.AcquireSlot(ctx); err != nil {
		return nil, 0, err
	}
	defer c.ReleaseSlot()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	accept := cfg.Accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.UserAgent)

	maxRetry := cfg.MaxRetry
	if maxRetry <= 0 {
		maxRetry = c.MaxRetry
	}
	if maxRetry <= 0 {
		maxRetry = DefaultMaxRetry
	}

	source := cfg.Source
	if source == "" {
		source = "unknown"
	}
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt < maxRetry; attempt++ {
		if attempt > 0 {
			metrics.UpstreamRetries.WithLabelValues(source, cfg.Action).Inc()
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, 0, fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			}
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.Logger.Warn("upstream request failed, retrying",
				"attempt", attempt+1,
				"url", cfg.URL,
				"error", err)
			continue
		}

		body, err := readAndClose(resp)
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
					case <-ctx.Done():
						return nil, 0, ctx.Err()
					}
					continue
				}
			}
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}

		// 5xx is retried; everything else is the caller's problem
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(body), 200))
			continue
		}

		metrics.RecordUpstreamCall(source, cfg.Action, time.Since(start).Seconds(), true, "")
		return body, resp.StatusCode, nil
	}

	c.CircuitBreaker.RecordFailure()
	metrics.RecordUpstreamCall(source, cfg.Action, time.Since(start).Seconds(), false, "retries_exhausted")
	return nil, 0, lastErr
}

// RecordSuccess records a successful request with the circuit breaker
func (c *Client) RecordSuccess() {
	c.CircuitBreaker.RecordSuccess()
}

// RecordFailure records a failed request with the circuit breaker
func (c *Client) RecordFailure() {
	c.CircuitBreaker.RecordFailure()
}

func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with tuned transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
