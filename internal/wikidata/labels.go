package wikidata

import (
	"context"
	"sort"
	"strings"

	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
)

// LanguageValue is a label or description in one language.
type LanguageValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Labels returns an entity's labels. With languages given, rows follow the
// request order; otherwise all labels are returned sorted by language code.
func (c *Client) Labels(ctx context.Context, raw string, languages []string) ([]LanguageValue, error) {
	return c.terms(ctx, raw, "labels", languages)
}

// Descriptions returns an entity's descriptions, shaped like Labels.
func (c *Client) Descriptions(ctx context.Context, raw string, languages []string) ([]LanguageValue, error) {
	return c.terms(ctx, raw, "descriptions", languages)
}

func (c *Client) terms(ctx context.Context, raw, props string, languages []string) ([]LanguageValue, error) {
	id, err := c.ResolveEntity(ctx, raw)
	if err != nil {
		return nil, err
	}

	wanted := locator.Languages(languages)
	entity, err := c.getEntity(ctx, id, props, strings.Join(wanted, "|"))
	if err != nil {
		return nil, err
	}

	terms := getMap(entity, props)
	results := []LanguageValue{}

	if len(wanted) > 0 {
		for _, lang := range wanted {
			if term := getMap(terms, lang); term != nil {
				results = append(results, LanguageValue{
					Language: lang,
					Value:    getString(term, "value"),
				})
			}
		}
		return results, nil
	}

	codes := make([]string, 0, len(terms))
	for lang := range terms {
		codes = append(codes, lang)
	}
	sort.Strings(codes)
	for _, lang := range codes {
		if term := getMap(terms, lang); term != nil {
			results = append(results, LanguageValue{
				Language: lang,
				Value:    getString(term, "value"),
			})
		}
	}
	return results, nil
}
