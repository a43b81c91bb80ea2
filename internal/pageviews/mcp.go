package pageviews

import (
	"context"
	"fmt"
	"time"
)

// PageviewsArgs contains parameters for the pageview lookup
type PageviewsArgs struct {
	Subject     string `json:"subject" jsonschema:"required" jsonschema_description:"Article locator, e.g. 'Berlin' or 'de:Berlin'"`
	Granularity string `json:"granularity,omitempty" jsonschema_description:"'daily' (default) or 'monthly'"`
	Start       string `json:"start,omitempty" jsonschema_description:"First date of the range, YYYY-MM-DD (default 30 days ago)"`
	End         string `json:"end,omitempty" jsonschema_description:"Last date of the range, YYYY-MM-DD (default today)"`
}

// PageviewsResult lists view counts, newest first
type PageviewsResult struct {
	Rows  []PageviewRow `json:"rows"`
	Count int           `json:"count"`
}

// PerArticleMCP is the MCP wrapper for PerArticle
func (c *Client) PerArticleMCP(ctx context.Context, args PageviewsArgs) (PageviewsResult, error) {
	opts := &Options{}

	switch args.Granularity {
	case "":
		opts.Granularity = Daily
	case string(Daily), string(Monthly):
		opts.Granularity = Granularity(args.Granularity)
	default:
		return PageviewsResult{}, fmt.Errorf("invalid granularity %q, expected daily or monthly", args.Granularity)
	}

	var err error
	if args.Start != "" {
		if opts.Start, err = time.Parse("2006-01-02", args.Start); err != nil {
			return PageviewsResult{}, fmt.Errorf("invalid start: %w", err)
		}
	}
	if args.End != "" {
		if opts.End, err = time.Parse("2006-01-02", args.End); err != nil {
			return PageviewsResult{}, fmt.Errorf("invalid end: %w", err)
		}
	}

	rows, err := c.PerArticle(ctx, args.Subject, opts)
	if err != nil {
		return PageviewsResult{}, err
	}
	return PageviewsResult{Rows: rows, Count: len(rows)}, nil
}
