// Package wikipedia queries the MediaWiki action API of the per-language
// Wikipedia editions and flattens the responses into row-shaped results.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/base"
	"github.com/olgasafonova/wikicell-mcp-server/internal/infra"
	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
	"github.com/olgasafonova/wikicell-mcp-server/metrics"
)

const (
	// DefaultCacheTTL for cached API responses
	DefaultCacheTTL = 5 * time.Minute

	// maxContinuations bounds how many continuation batches a single
	// listing call will follow before returning what it has.
	maxContinuations = 10
)

// Client provides access to the MediaWiki action API across language editions.
type Client struct {
	*base.Client

	// DefaultLanguage applies to locators without an explicit language prefix.
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

// NewClient creates a new Wikipedia API client. defaultLanguage is used for
// locators that carry no language prefix; empty means "en".
func NewClient(defaultLanguage string, opts ...ClientOption) *Client {
	if defaultLanguage == "" {
		defaultLanguage = locator.DefaultLanguage
	}
	return &Client{
		Client:          base.NewClient(opts...),
		DefaultLanguage: defaultLanguage,
	}
}

// BaseURL returns the action API endpoint for a language edition. It is a
// variable so tests can point the client at a local server.
var BaseURL = func(language string) string {
	return "https://" + language + ".wikipedia.org/w/api.php"
}

// PageNotFoundError indicates the requested page does not exist in the
// given language edition.
type PageNotFoundError struct {
	Language string
	Title    string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page not found: %s:%s", e.Language, e.Title)
}

// APIError is the error envelope the action API returns with format=json.
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wikipedia API error %s: %s", e.Code, e.Info)
}

// PageMissing reports whether the API rejected the request because the
// page does not exist or the title cannot exist.
func (e *APIError) PageMissing() bool {
	return e.Code == "missingtitle" || e.Code == "invalidtitle"
}

// query performs one action API request against the given language edition
// and returns the decoded top-level JSON object. Responses are cached per
// encoded query string.
func (c *Client) query(ctx context.Context, language string, params url.Values) (map[string]interface{}, error) {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	reqURL := BaseURL(language) + "?" + params.Encode()

	cacheKey := "wikipedia:" + language + ":" + params.Encode()
	if cached, ok := c.Cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return cached.(map[string]interface{}), nil
	}
	metrics.RecordCacheAccess(false)

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (interface{}, error) {
		body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
			URL:    reqURL,
			Source: "wikipedia",
			Action: params.Get("action"),
		})
		if err != nil {
			return nil, err
		}
		if statusCode >= 400 {
			return nil, fmt.Errorf("wikipedia API returned status %d", statusCode)
		}

		var data map[string]interface{}
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("failed to parse wikipedia response: %w", err)
		}

		if errObj := getMap(data, "error"); errObj != nil {
			return nil, &APIError{
				Code: getString(errObj, "code"),
				Info: getString(errObj, "info"),
			}
		}

		c.RecordSuccess()
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data := result.(map[string]interface{})
	c.Cache.Set(cacheKey, data, DefaultCacheTTL)
	return data, nil
}

// queryAll runs query repeatedly, following the API's "continue" tokens, and
// hands every batch to collect. It stops when the API reports no more data
// or after maxContinuations batches.
func (c *Client) queryAll(ctx context.Context, language string, params url.Values, collect func(data map[string]interface{})) error {
	for i := 0; i < maxContinuations; i++ {
		data, err := c.query(ctx, language, params)
		if err != nil {
			return err
		}
		collect(data)

		cont := getMap(data, "continue")
		if cont == nil {
			return nil
		}
		// Continuation tokens replace the previous ones wholesale.
		params.Del("continue")
		for key, value := range cont {
			params.Set(key, fmt.Sprintf("%v", value))
		}
	}
	c.Logger.Warn("continuation limit reached", "language", language, "action", params.Get("action"))
	return nil
}

// resolve parses a locator using the client's configured default language.
func (c *Client) resolve(raw string) (locator.Locator, error) {
	return locator.Parse(raw, c.DefaultLanguage)
}

// firstPage returns the first entry of query.pages, or a PageNotFoundError
// when the page is missing or invalid.
func firstPage(data map[string]interface{}, language, title string) (map[string]interface{}, error) {
	q := getMap(data, "query")
	if q == nil {
		return nil, &PageNotFoundError{Language: language, Title: title}
	}
	pages := getSlice(q, "pages")
	if len(pages) == 0 {
		return nil, &PageNotFoundError{Language: language, Title: title}
	}
	page, ok := pages[0].(map[string]interface{})
	if !ok {
		return nil, &PageNotFoundError{Language: language, Title: title}
	}
	if getBool(page, "missing") || getBool(page, "invalid") {
		return nil, &PageNotFoundError{Language: language, Title: title}
	}
	return page, nil
}
