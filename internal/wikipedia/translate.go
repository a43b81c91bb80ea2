package wikipedia

import (
	"context"
	"errors"
	"net/url"

	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
)

// Translation is one language edition's title for a subject.
type Translation struct {
	Language string `json:"language"`
	Title    string `json:"title"`
}

// Translations returns the titles of a page across language editions via
// prop=langlinks. The source page itself is always the first entry. When
// targetLanguages is non-empty, other languages are filtered out.
func (c *Client) Translations(ctx context.Context, raw string, targetLanguages []string) ([]Translation, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool)
	for _, lang := range locator.Languages(targetLanguages) {
		wanted[lang] = true
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "langlinks")
	params.Set("titles", loc.Subject)
	params.Set("lllimit", "max")
	params.Set("redirects", "1")

	results := []Translation{{Language: loc.Language, Title: loc.Subject}}
	var pageErr error

	err = c.queryAll(ctx, loc.Language, params, func(data map[string]interface{}) {
		page, err := firstPage(data, loc.Language, loc.Subject)
		if err != nil {
			pageErr = err
			return
		}
		// Continuation batches may return the canonical title after
		// redirect resolution; prefer it for the source row.
		if title := getString(page, "title"); title != "" {
			results[0].Title = title
		}
		for _, item := range getSlice(page, "langlinks") {
			link, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			lang := getString(link, "lang")
			title := getString(link, "title")
			if lang == "" || title == "" {
				continue
			}
			if len(wanted) > 0 && !wanted[lang] {
				continue
			}
			results = append(results, Translation{Language: lang, Title: title})
		}
	})
	if err != nil {
		return nil, err
	}
	if pageErr != nil {
		return nil, pageErr
	}

	if len(wanted) > 0 && !wanted[results[0].Language] {
		results = results[1:]
	}
	return dedupeTranslations(results), nil
}

// Synonyms returns the redirect titles pointing at a page, i.e. its
// alternative names within one language edition.
func (c *Client) Synonyms(ctx context.Context, raw string) ([]string, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "backlinks")
	params.Set("bltitle", loc.Subject)
	params.Set("blfilterredir", "redirects")
	params.Set("blnamespace", "0")
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

// Expand combines translation and synonym lookup: every translated title is
// returned together with the redirect titles of that language edition. This
// fans out one synonym request per translation.
func (c *Client) Expand(ctx context.Context, raw string, targetLanguages []string) ([]Translation, error) {
	translations, err := c.Translations(ctx, raw, targetLanguages)
	if err != nil {
		return nil, err
	}

	results := make([]Translation, 0, len(translations))
	for _, tr := range translations {
		results = append(results, tr)

		synonyms, err := c.Synonyms(ctx, tr.Language+":"+tr.Title)
		if err != nil {
			// A translated title with no resolvable page contributes
			// no synonyms but keeps its own row.
			var notFound *PageNotFoundError
			var apiErr *APIError
			if errors.As(err, &notFound) || (errors.As(err, &apiErr) && apiErr.PageMissing()) {
				continue
			}
			return nil, err
		}
		for _, syn := range synonyms {
			results = append(results, Translation{Language: tr.Language, Title: syn})
		}
	}
	return dedupeTranslations(results), nil
}

func dedupeTranslations(in []Translation) []Translation {
	seen := make(map[Translation]bool, len(in))
	out := make([]Translation, 0, len(in))
	for _, tr := range in {
		if seen[tr] {
			continue
		}
		seen[tr] = true
		out = append(out, tr)
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
