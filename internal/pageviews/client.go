// Package pageviews queries the Wikimedia REST pageview metrics and
// returns per-article view counts, newest first.
package pageviews

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/base"
	"github.com/olgasafonova/wikicell-mcp-server/internal/infra"
	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
	"github.com/olgasafonova/wikicell-mcp-server/metrics"
)

const (
	// DefaultCacheTTL for cached metric responses
	DefaultCacheTTL = 15 * time.Minute

	// timestampLayout is the provider's YYYYMMDDHH encoding.
	timestampLayout = "2006010215"
)

// BaseURL is the Wikimedia REST metrics endpoint. A variable so tests can
// point the client at a local server.
var BaseURL = "https://wikimedia.org/api/rest_v1"

// Granularity of a pageview series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Monthly Granularity = "monthly"
)

// PageviewRow is one date's view count for an article.
type PageviewRow struct {
	Date  time.Time `json:"date"`
	Views int64     `json:"views"`
}

// Options bounds a pageview query.
type Options struct {
	// Granularity defaults to Daily.
	Granularity Granularity
	// Start and End bound the series; both default to the last 30 days.
	Start time.Time
	End   time.Time
}

// Client provides access to the Wikimedia pageview metrics API.
type Client struct {
	*base.Client

	DefaultLanguage string
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithCache sets a custom cache
func WithCache(c *infra.Cache) ClientOption {
	return base.WithCache(c)
}

// NewClient creates a new pageview metrics client.
func NewClient(defaultLanguage string, opts ...ClientOption) *Client {
	if defaultLanguage == "" {
		defaultLanguage = locator.DefaultLanguage
	}
	return &Client{
		Client:          base.NewClient(opts...),
		DefaultLanguage: defaultLanguage,
	}
}

// restResponse is the metrics payload envelope.
type restResponse struct {
	Items []struct {
		Timestamp string `json:"timestamp"`
		Views     int64  `json:"views"`
	} `json:"items"`
}

// PerArticle returns the pageview series of one article, newest first.
func (c *Client) PerArticle(ctx context.Context, raw string, opts *Options) ([]PageviewRow, error) {
	loc, err := locator.Parse(raw, c.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	granularity := Daily
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -30)
	if opts != nil {
		if opts.Granularity != "" {
			granularity = opts.Granularity
		}
		if !opts.Start.IsZero() {
			start = opts.Start
		}
		if !opts.End.IsZero() {
			end = opts.End
		}
	}
	if end.Before(start) {
		return nil, fmt.Errorf("pageviews range end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	article := strings.ReplaceAll(loc.Subject, " ", "_")
	reqURL := fmt.Sprintf("%s/metrics/pageviews/per-article/%s.wikipedia/all-access/user/%s/%s/%s/%s",
		BaseURL,
		loc.Language,
		url.PathEscape(article),
		granularity,
		start.Format("20060102"),
		end.Format("20060102"))

	cacheKey := "pageviews:" + reqURL
	if cached, ok := c.Cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return cached.([]PageviewRow), nil
	}
	metrics.RecordCacheAccess(false)

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:    reqURL,
		Source: "pageviews",
		Action: "per_article",
	})
	if err != nil {
		return nil, err
	}
	// The metrics API answers 404 for articles with no recorded views.
	if statusCode == http.StatusNotFound {
		c.RecordSuccess()
		return []PageviewRow{}, nil
	}
	if statusCode >= 400 {
		return nil, fmt.Errorf("pageviews API returned status %d", statusCode)
	}

	var payload restResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse pageviews response: %w", err)
	}

	rows := make([]PageviewRow, 0, len(payload.Items))
	for _, item := range payload.Items {
		ts, err := time.Parse(timestampLayout, item.Timestamp)
		if err != nil {
			c.Logger.Warn("skipping pageview item with bad timestamp",
				"article", article, "timestamp", item.Timestamp)
			continue
		}
		rows = append(rows, PageviewRow{Date: ts, Views: item.Views})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})

	c.RecordSuccess()
	c.Cache.Set(cacheKey, rows, DefaultCacheTTL)
	return rows, nil
}
