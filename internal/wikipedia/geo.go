package wikipedia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
)

const (
	// Radius bounds enforced by the geosearch endpoint, in meters.
	MinGeoRadius = 10
	MaxGeoRadius = 10000

	// DefaultGeoLimit when the caller does not ask for a specific count.
	DefaultGeoLimit = 50
	maxGeoLimit     = 500
)

// GeoResult is one article near a coordinate.
type GeoResult struct {
	Title          string  `json:"title"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceMeters float64 `json:"distance_meters"`
}

// ArticlesAround returns articles within radiusMeters of a point, nearest
// first. The radius is clamped to the API's [10, 10000] meter bounds.
func (c *Client) ArticlesAround(ctx context.Context, language string, point locator.GeoPoint, radiusMeters, limit int) ([]GeoResult, error) {
	if language == "" {
		language = c.DefaultLanguage
	}
	if radiusMeters < MinGeoRadius {
		radiusMeters = MinGeoRadius
	}
	if radiusMeters > MaxGeoRadius {
		radiusMeters = MaxGeoRadius
	}
	if limit <= 0 {
		limit = DefaultGeoLimit
	}
	if limit > maxGeoLimit {
		limit = maxGeoLimit
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "geosearch")
	params.Set("gscoord", fmt.Sprintf("%v|%v", point.Lat, point.Lon))
	params.Set("gsradius", strconv.Itoa(radiusMeters))
	params.Set("gslimit", strconv.Itoa(limit))

	data, err := c.query(ctx, language, params)
	if err != nil {
		return nil, err
	}

	results := []GeoResult{}
	q := getMap(data, "query")
	if q == nil {
		return results, nil
	}
	for _, item := range getSlice(q, "geosearch") {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		results = append(results, GeoResult{
			Title:          getString(entry, "title"),
			Lat:            getFloat(entry, "lat"),
			Lon:            getFloat(entry, "lon"),
			DistanceMeters: getFloat(entry, "dist"),
		})
	}
	return results, nil
}

// Coordinates returns the primary coordinate of a page. The boolean is
// false when the page exists but carries no coordinate.
func (c *Client) Coordinates(ctx context.Context, raw string) (locator.GeoPoint, bool, error) {
	loc, err := c.resolve(raw)
	if err != nil {
		return locator.GeoPoint{}, false, err
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "coordinates")
	params.Set("titles", loc.Subject)
	params.Set("redirects", "1")

	data, err := c.query(ctx, loc.Language, params)
	if err != nil {
		return locator.GeoPoint{}, false, err
	}

	page, err := firstPage(data, loc.Language, loc.Subject)
	if err != nil {
		return locator.GeoPoint{}, false, err
	}

	coords := getSlice(page, "coordinates")
	if len(coords) == 0 {
		return locator.GeoPoint{}, false, nil
	}
	coord, ok := coords[0].(map[string]interface{})
	if !ok {
		return locator.GeoPoint{}, false, nil
	}
	return locator.GeoPoint{
		Lat: getFloat(coord, "lat"),
		Lon: getFloat(coord, "lon"),
	}, true, nil
}
