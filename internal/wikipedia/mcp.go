package wikipedia

import (
	"context"
	"fmt"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// TranslationsMCP is the MCP wrapper for Translations
func (c *Client) TranslationsMCP(ctx context.Context, args TranslationsArgs) (TranslationsResult, error) {
	translations, err := c.Translations(ctx, args.Subject, args.Languages)
	if err != nil {
		return TranslationsResult{}, err
	}
	return TranslationsResult{Translations: translations, Count: len(translations)}, nil
}

// SynonymsMCP is the MCP wrapper for Synonyms
func (c *Client) SynonymsMCP(ctx context.Context, args SynonymsArgs) (SynonymsResult, error) {
	synonyms, err := c.Synonyms(ctx, args.Subject)
	if err != nil {
		return SynonymsResult{}, err
	}
	return SynonymsResult{Synonyms: synonyms, Count: len(synonyms)}, nil
}

// ExpandMCP is the MCP wrapper for Expand
func (c *Client) ExpandMCP(ctx context.Context, args ExpandArgs) (ExpandResult, error) {
	titles, err := c.Expand(ctx, args.Subject, args.Languages)
	if err != nil {
		return ExpandResult{}, err
	}
	return ExpandResult{Titles: titles, Count: len(titles)}, nil
}

// OutboundLinksMCP is the MCP wrapper for OutboundLinks
func (c *Client) OutboundLinksMCP(ctx context.Context, args LinksArgs) (LinksResult, error) {
	titles, err := c.OutboundLinks(ctx, args.Subject, &LinkOptions{Namespace: args.Namespace})
	if err != nil {
		return LinksResult{}, err
	}
	return LinksResult{Titles: titles, Count: len(titles)}, nil
}

// InboundLinksMCP is the MCP wrapper for InboundLinks
func (c *Client) InboundLinksMCP(ctx context.Context, args LinksArgs) (LinksResult, error) {
	titles, err := c.InboundLinks(ctx, args.Subject, &LinkOptions{Namespace: args.Namespace})
	if err != nil {
		return LinksResult{}, err
	}
	return LinksResult{Titles: titles, Count: len(titles)}, nil
}

// MutualLinksMCP is the MCP wrapper for MutualLinks
func (c *Client) MutualLinksMCP(ctx context.Context, args LinksArgs) (LinksResult, error) {
	titles, err := c.MutualLinks(ctx, args.Subject, &LinkOptions{Namespace: args.Namespace})
	if err != nil {
		return LinksResult{}, err
	}
	return LinksResult{Titles: titles, Count: len(titles)}, nil
}

// CategoryMembersMCP is the MCP wrapper for CategoryMembers
func (c *Client) CategoryMembersMCP(ctx context.Context, args CategoryArgs) (TitlesResult, error) {
	titles, err := c.CategoryMembers(ctx, args.Category)
	if err != nil {
		return TitlesResult{}, err
	}
	return TitlesResult{Titles: titles, Count: len(titles)}, nil
}

// SubcategoriesMCP is the MCP wrapper for Subcategories
func (c *Client) SubcategoriesMCP(ctx context.Context, args CategoryArgs) (TitlesResult, error) {
	titles, err := c.Subcategories(ctx, args.Category)
	if err != nil {
		return TitlesResult{}, err
	}
	return TitlesResult{Titles: titles, Count: len(titles)}, nil
}

// PageCategoriesMCP is the MCP wrapper for PageCategories
func (c *Client) PageCategoriesMCP(ctx context.Context, args PageCategoriesArgs) (TitlesResult, error) {
	titles, err := c.PageCategories(ctx, args.Subject)
	if err != nil {
		return TitlesResult{}, err
	}
	return TitlesResult{Titles: titles, Count: len(titles)}, nil
}

// GeoSearchMCP is the MCP wrapper for ArticlesAround
func (c *Client) GeoSearchMCP(ctx context.Context, args GeoSearchArgs) (GeoSearchResult, error) {
	point, err := locator.ParseGeoPoint(args.Point)
	if err != nil {
		return GeoSearchResult{}, err
	}

	radius := args.RadiusMeters
	if radius == 0 {
		radius = 1000
	}

	articles, err := c.ArticlesAround(ctx, args.Language, point, radius, args.Limit)
	if err != nil {
		return GeoSearchResult{}, err
	}
	return GeoSearchResult{Articles: articles, Count: len(articles)}, nil
}

// CoordinatesMCP is the MCP wrapper for Coordinates
func (c *Client) CoordinatesMCP(ctx context.Context, args CoordinatesArgs) (CoordinatesResult, error) {
	point, found, err := c.Coordinates(ctx, args.Subject)
	if err != nil {
		return CoordinatesResult{}, err
	}
	return CoordinatesResult{Lat: point.Lat, Lon: point.Lon, Found: found}, nil
}

// PageEditsMCP is the MCP wrapper for PageEdits
func (c *Client) PageEditsMCP(ctx context.Context, args PageEditsArgs) (PageEditsResult, error) {
	opts := &EditOptions{Limit: args.Limit}

	var err error
	if opts.Start, err = parseDate(args.Start); err != nil {
		return PageEditsResult{}, fmt.Errorf("invalid start: %w", err)
	}
	if opts.End, err = parseDate(args.End); err != nil {
		return PageEditsResult{}, fmt.Errorf("invalid end: %w", err)
	}

	revisions, err := c.PageEdits(ctx, args.Subject, opts)
	if err != nil {
		return PageEditsResult{}, err
	}
	return PageEditsResult{Revisions: revisions, Count: len(revisions)}, nil
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
