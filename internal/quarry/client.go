// Package quarry fetches the latest result set of a saved Quarry query
// (the Wikimedia SQL sandbox) and flattens it into header and data rows.
package quarry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/base"
	"github.com/olgasafonova/wikicell-mcp-server/internal/infra"
	"github.com/olgasafonova/wikicell-mcp-server/metrics"
)

// DefaultCacheTTL for cached query results
const DefaultCacheTTL = 15 * time.Minute

// BaseURL is the Quarry endpoint. A variable so tests can point the client
// at a local server.
var BaseURL = "https://quarry.wmcloud.org"

// ResultSet is the latest run of a saved query: one header row plus the
// data rows, every cell rendered as a string.
type ResultSet struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Client provides access to Quarry result sets.
type Client struct {
	*base.Client
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

// NewClient creates a new Quarry client.
func NewClient(opts ...ClientOption) *Client {
	return &Client{Client: base.NewClient(opts...)}
}

// QueryNotFoundError indicates the query ID has no published latest result.
type QueryNotFoundError struct {
	QueryID int
}

func (e *QueryNotFoundError) Error() string {
	return fmt.Sprintf("quarry query %d has no latest result", e.QueryID)
}

// payload is the latest-result JSON shape.
type payload struct {
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}

// LatestResult returns the first result set of a query's latest run.
func (c *Client) LatestResult(ctx context.Context, queryID int) (*ResultSet, error) {
	if queryID <= 0 {
		return nil, fmt.Errorf("invalid quarry query id %d", queryID)
	}

	reqURL := fmt.Sprintf("%s/query/%d/result/latest/0/json", BaseURL, queryID)

	cacheKey := "quarry:" + strconv.Itoa(queryID)
	if cached, ok := c.Cache.Get(cacheKey); ok {
		metrics.RecordCacheAccess(true)
		return cached.(*ResultSet), nil
	}
	metrics.RecordCacheAccess(false)

	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:    reqURL,
		Source: "quarry",
		Action: "latest_result",
	})
	if err != nil {
		return nil, err
	}
	if statusCode == http.StatusNotFound {
		c.RecordSuccess()
		return nil, &QueryNotFoundError{QueryID: queryID}
	}
	if statusCode >= 400 {
		return nil, fmt.Errorf("quarry returned status %d", statusCode)
	}

	var data payload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse quarry response: %w", err)
	}

	result := &ResultSet{
		Headers: data.Headers,
		Rows:    make([][]string, 0, len(data.Rows)),
	}
	if result.Headers == nil {
		result.Headers = []string{}
	}
	for _, row := range data.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, formatCell(cell))
		}
		result.Rows = append(result.Rows, cells)
	}

	c.RecordSuccess()
	c.Cache.Set(cacheKey, result, DefaultCacheTTL)
	return result, nil
}

// formatCell renders one SQL cell as text. Integral floats lose their
// decimal point since JSON numbers arrive as float64.
func formatCell(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
