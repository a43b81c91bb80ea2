package wikipedia

import (
	"context"
	"net/url"
	"strings"
)

// categoryPrefix is the canonical namespace prefix. The action API accepts
// it on every language edition regardless of the localized alias.
const categoryPrefix = "Category:"

// normalizeCategoryTitle ensures the subject carries the canonical
// Category: prefix exactly once.
func normalizeCategoryTitle(subject string) string {
	if strings.HasPrefix(subject, categoryPrefix) {
		return subject
	}
	return categoryPrefix + subject
}

// CategoryMembers returns the article-namespace pages directly contained
// in a category.
func (c *Client) CategoryMembers(ctx context.Context, raw string) ([]string, error) {
	return c.categoryMembers(ctx, raw, "page", "0")
}

// Subcategories returns the categories directly contained in a category.
func (c *Client) Subcategories(ctx context.Context, raw string) ([]string, error) {
	return c.categoryMembers(ctx, raw, "subcat", "14")
}

func (c *Client) categoryMembers(ctx context.Context, raw, cmtype, namespace string) ([]string, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "categorymembers")
	params.Set("cmtitle", normalizeCategoryTitle(loc.Subject))
	params.Set("cmtype", cmtype)
	params.Set("cmnamespace", namespace)
	params.Set("cmlimit", "max")

	titles := []string{}
	err = c.queryAll(ctx, loc.Language, params, func(data map[string]interface{}) {
		q := getMap(data, "query")
		if q == nil {
			return
		}
		for _, item := range getSlice(q, "categorymembers") {
			member, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if title := getString(member, "title"); title != "" {
				titles = append(titles, title)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return dedupeStrings(titles), nil
}

// PageCategories returns the non-hidden categories a page belongs to.
func (c *Client) PageCategories(ctx context.Context, raw string) ([]string, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "categories")
	params.Set("titles", loc.Subject)
	params.Set("clshow", "!hidden")
	params.Set("cllimit", "max")
	params.Set("redirects", "1")

	titles := []string{}
	var pageErr error

	err = c.queryAll(ctx, loc.Language, params, func(data map[string]interface{}) {
		page, err := firstPage(data, loc.Language, loc.Subject)
		if err != nil {
			pageErr = err
			return
		}
		for _, item := range getSlice(page, "categories") {
			cat, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if title := getString(cat, "title"); title != "" {
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
