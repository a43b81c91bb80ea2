// Package wikidata queries the Wikidata wbgetentities API and flattens
// entity claims, labels, and descriptions into row-shaped results.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/base"
	"github.com/olgasafonova/wikicell-mcp-server/internal/infra"
	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
	"github.com/olgasafonova/wikicell-mcp-server/metrics"
)

const (
	// DefaultCacheTTL for cached entity responses
	DefaultCacheTTL = 5 * time.Minute

	// maxEntitiesPerRequest is the wbgetentities ids-parameter cap.
	maxEntitiesPerRequest = 50
)

// BaseURL is the Wikidata action API endpoint. A variable so tests can
// point the client at a local server.
var BaseURL = "https://www.wikidata.org/w/api.php"

// qidRegex matches a bare entity identifier such as Q64.
var qidRegex = regexp.MustCompile(`^[Qq]\d+$`)

// Client provides access to the Wikidata entity API.
type Client struct {
	*base.Client

	// DefaultLanguage applies to locators without a language prefix and
	// to label resolution.
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

// NewClient creates a new Wikidata client.
func NewClient(defaultLanguage string, opts ...ClientOption) *Client {
	if defaultLanguage == "" {
		defaultLanguage = locator.DefaultLanguage
	}
	return &Client{
		Client:          base.NewClient(opts...),
		DefaultLanguage: defaultLanguage,
	}
}

// EntityNotFoundError indicates no Wikidata entity matched the locator.
type EntityNotFoundError struct {
	Locator string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("wikidata entity not found: %s", e.Locator)
}

// ResolveEntity turns a locator into an entity ID. Bare identifiers like
// "Q64" pass through uppercased; anything else is treated as a page title
// and looked up through the sitelink of its language edition.
func (c *Client) ResolveEntity(ctx context.Context, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if qidRegex.MatchString(trimmed) {
		return strings.ToUpper(trimmed), nil
	}

	loc, err := locator.Parse(raw, c.DefaultLanguage)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("sites", strings.ReplaceAll(loc.Language, "-", "_")+"wiki")
	params.Set("titles", loc.Subject)
	params.Set("props", "info")
	params.Set("normalize", "1")

	data, err := c.query(ctx, params)
	if err != nil {
		return "", err
	}

	entities := getMap(data, "entities")
	for id, raw := range entities {
		entity, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if _, missing := entity["missing"]; missing {
			continue
		}
		if strings.HasPrefix(id, "Q") {
			return id, nil
		}
	}
	return "", &EntityNotFoundError{Locator: loc.String()}
}

// getEntity fetches one entity with the requested props.
func (c *Client) getEntity(ctx context.Context, id, props, languages string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", id)
	params.Set("props", props)
	if languages != "" {
		params.Set("languages", languages)
		params.Set("languagefallback", "1")
	}

	data, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}

	entity := getMap(getMap(data, "entities"), id)
	if entity == nil {
		return nil, &EntityNotFoundError{Locator: id}
	}
	if _, missing := entity["missing"]; missing {
		return nil, &EntityNotFoundError{Locator: id}
	}
	return entity, nil
}

// query performs one API request and returns the decoded top-level object.
func (c *Client) query(ctx context.Context, params url.Values) (map[string]interface{}, error) {
	params.Set("format", "json")

	reqURL := BaseURL + "?" + params.Encode()

	cacheKey := "wikidata:" + params.Encode()
	if cached, ok := c.Cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return cached.(map[string]interface{}), nil
	}
	metrics.RecordCacheAccess(false)

	result, _, err := c.Dedup.Do(ctx, cacheKey, func() (interface{}, error) {
		body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
			URL:    reqURL,
			Source: "wikidata",
			Action: params.Get("action"),
		})
		if err != nil {
			return nil, err
		}
		if statusCode >= 400 {
			return nil, fmt.Errorf("wikidata API returned status %d", statusCode)
		}

		var data map[string]interface{}
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("failed to parse wikidata response: %w", err)
		}

		if errObj := getMap(data, "error"); errObj != nil {
			return nil, fmt.Errorf("wikidata API error %s: %s",
				getString(errObj, "code"), getString(errObj, "info"))
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

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func getSlice(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key].([]interface{}); ok {
		return v
	}
	return nil
}
