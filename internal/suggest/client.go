// Package suggest queries the Google Suggest autocomplete endpoint and
// flattens its toolbar XML into one suggestion per row.
package suggest

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/base"
	"github.com/olgasafonova/wikicell-mcp-server/internal/infra"
	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
	"github.com/olgasafonova/wikicell-mcp-server/metrics"
)

// DefaultCacheTTL for cached suggestion responses
const DefaultCacheTTL = 5 * time.Minute

// BaseURL is the Google Suggest endpoint. A variable so tests can point
// the client at a local server.
var BaseURL = "https://suggestqueries.google.com/complete/search"

// Client provides access to Google Suggest.
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

// NewClient creates a new Google Suggest client.
func NewClient(defaultLanguage string, opts ...ClientOption) *Client {
	if defaultLanguage == "" {
		defaultLanguage = locator.DefaultLanguage
	}
	return &Client{
		Client:          base.NewClient(opts...),
		DefaultLanguage: defaultLanguage,
	}
}

// toplevel mirrors the output=toolbar XML document.
type toplevel struct {
	XMLName     xml.Name `xml:"toplevel"`
	Suggestions []struct {
		Suggestion struct {
			Data string `xml:"data,attr"`
		} `xml:"suggestion"`
	} `xml:"CompleteSuggestion"`
}

// Suggestions returns autocomplete completions for a query. An explicit
// language overrides the client default; results keep the provider's
// ranking order.
func (c *Client) Suggestions(ctx context.Context, query, language string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty suggest query")
	}
	if language == "" {
		language = c.DefaultLanguage
	}

	params := url.Values{}
	params.Set("output", "toolbar")
	params.Set("hl", language)
	params.Set("q", query)

	reqURL := BaseURL + "?" + params.Encode()

	cacheKey := "suggest:" + params.Encode()
	if cached, ok := c.Cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return cached.([]string), nil
	}
	metrics.RecordCacheAccess(false)

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:    reqURL,
		Accept: "application/xml",
		Source: "google",
		Action: "suggest",
	})
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		return nil, fmt.Errorf("google suggest returned status %d", statusCode)
	}

	var doc toplevel
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse suggest response: %w", err)
	}

	results := []string{}
	for _, item := range doc.Suggestions {
		if item.Suggestion.Data != "" {
			results = append(results, item.Suggestion.Data)
		}
	}

	c.RecordSuccess()
	c.Cache.Set(cacheKey, results, DefaultCacheTTL)
	return results, nil
}
