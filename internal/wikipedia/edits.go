package wikipedia

import (
	"context"
	"net/url"
	"time"
)

// Revision is one entry of a page's edit history.
type Revision struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Comment   string    `json:"comment"`
	Size      int       `json:"size"`
}

// EditOptions bounds an edit-history query. Start is the OLDER end of the
// range and End the newer one, regardless of how the API names things.
type EditOptions struct {
	Start time.Time
	End   time.Time
	Limit int
}

// PageEdits returns a page's revision history, newest first. The API
// enumerates revisions from newest to oldest, so the caller's Start (older
// bound) becomes rvend and End (newer bound) becomes rvstart upstream.
func (c *Client) PageEdits(ctx context.Context, raw string, opts *EditOptions) ([]Revision, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("titles", loc.Subject)
	params.Set("rvprop", "timestamp|user|comment|size")
	params.Set("rvlimit", "max")
	params.Set("redirects", "1")

	limit := 0
	if opts != nil {
		if !opts.Start.IsZero() {
			params.Set("rvend", opts.Start.UTC().Format(time.RFC3339))
		}
		if !opts.End.IsZero() {
			params.Set("rvstart", opts.End.UTC().Format(time.RFC3339))
		}
		limit = opts.Limit
	}

	revisions := []Revision{}
	var pageErr error

	err = c.queryAll(ctx, loc.Language, params, func(data map[string]interface{}) {
		page, err := firstPage(data, loc.Language, loc.Subject)
		if err != nil {
			pageErr = err
			return
		}
		for _, item := range getSlice(page, "revisions") {
			rev, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			ts, err := time.Parse(time.RFC3339, getString(rev, "timestamp"))
			if err != nil {
				c.Logger.Warn("skipping revision with bad timestamp",
					"title", loc.Subject, "timestamp", getString(rev, "timestamp"))
				continue
			}
			revisions = append(revisions, Revision{
				Timestamp: ts,
				User:      getString(rev, "user"),
				Comment:   getString(rev, "comment"),
				Size:      getInt(rev, "size"),
			})
		}
	})
	if err != nil {
		return nil, err
	}
	if pageErr != nil {
		return nil, pageErr
	}

	if limit > 0 && len(revisions) > limit {
		revisions = revisions[:limit]
	}
	return revisions, nil
}
