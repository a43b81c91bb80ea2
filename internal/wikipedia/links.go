package wikipedia

import (
	"context"
	"net/url"
	"strconv"
)

// LinkOptions configures link listing.
type LinkOptions struct {
	// Namespace restricts results to one MediaWiki namespace. The zero
	// value means the article namespace.
	Namespace int
}

// OutboundLinks returns the article-namespace pages a page links to,
// in the API's order.
func (c *Client) OutboundLinks(ctx context.Context, raw string, opts *LinkOptions) ([]string, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}

	namespace := 0
	if opts != nil {
		namespace = opts.Namespace
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "links")
	params.Set("titles", loc.Subject)
	params.Set("plnamespace", strconv.Itoa(namespace))
	params.Set("pllimit", "max")
	params.Set("redirects", "1")

	titles := []string{}
	var pageErr error

	err = c.queryAll(ctx, loc.Language, params, func(data map[string]interface{}) {
		page, err := firstPage(data, loc.Language, loc.Subject)
		if err != nil {
			pageErr = err
			return
		}
		for _, item := range getSlice(page, "links") {
			link, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if title := getString(link, "title"); title != "" {
				titles = append(titles, title)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if pageErr != nil {
		return nil, pageErr
	}
	return dedupeStrings(titles), nil
}

// InboundLinks returns the pages linking to a page, redirects excluded.
func (c *Client) InboundLinks(ctx context.Context, raw string, opts *LinkOptions) ([]string, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}

	namespace := 0
	if opts != nil {
		namespace = opts.Namespace
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "backlinks")
	params.Set("bltitle", loc.Subject)
	params.Set("blnamespace", strconv.Itoa(namespace))
	params.Set("blfilterredir", "nonredirects")
	params.Set("bllimit", "max")

	titles := []string{}
	err = c.queryAll(ctx, loc.Language, params, func(data map[string]interface{}) {
		q := getMap(data, "query")
		if q == nil {
			return
		}
		for _, item := range getSlice(q, "backlinks") {
			link, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if title := getString(link, "title"); title != "" {
				titles = append(titles, title)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return dedupeStrings(titles), nil
}

// MutualLinks returns the pages that both link to and are linked from a
// page: the exact intersection of the inbound and outbound sets, in
// outbound order.
func (c *Client) MutualLinks(ctx context.Context, raw string, opts *LinkOptions) ([]string, error) {
	outbound, err := c.OutboundLinks(ctx, raw, opts)
	if err != nil {
		return nil, err
	}
	inbound, err := c.InboundLinks(ctx, raw, opts)
	if err != nil {
		return nil, err
	}
	return intersect(outbound, inbound), nil
}

// intersect keeps the entries of a that also occur in b, preserving a's order.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	out := []string{}
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	return out
}
