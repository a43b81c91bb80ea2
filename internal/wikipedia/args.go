package wikipedia

// MCP argument and result types. Subjects accept the "language:title"
// locator form; a bare title uses the server's configured default language.

// TranslationsArgs contains parameters for the translations lookup
type TranslationsArgs struct {
	Subject   string   `json:"subject" jsonschema:"required" jsonschema_description:"Page locator, e.g. 'Berlin' or 'de:Berlin'"`
	Languages []string `json:"languages,omitempty" jsonschema_description:"Restrict results to these language codes"`
}

// TranslationsResult lists a page's titles across language editions
type TranslationsResult struct {
	Translations []Translation `json:"translations"`
	Count        int           `json:"count"`
}

// SynonymsArgs contains parameters for the synonyms lookup
type SynonymsArgs struct {
	Subject string `json:"subject" jsonschema:"required" jsonschema_description:"Page locator, e.g. 'NYC' or 'en:NYC'"`
}

// SynonymsResult lists the redirect titles pointing at a page
type SynonymsResult struct {
	Synonyms []string `json:"synonyms"`
	Count    int      `json:"count"`
}

// ExpandArgs contains parameters for the combined translate-and-expand lookup
type ExpandArgs struct {
	Subject   string   `json:"subject" jsonschema:"required" jsonschema_description:"Page locator, e.g. 'Berlin' or 'de:Berlin'"`
	Languages []string `json:"languages,omitempty" jsonschema_description:"Restrict the fan-out to these language codes"`
}

// ExpandResult lists translated titles together with their per-language synonyms
type ExpandResult struct {
	Titles []Translation `json:"titles"`
	Count  int           `json:"count"`
}

// LinksArgs contains parameters for link listings
type LinksArgs struct {
	Subject   string `json:"subject" jsonschema:"required" jsonschema_description:"Page locator, e.g. 'Berlin' or 'de:Berlin'"`
	Namespace int    `json:"namespace,omitempty" jsonschema_description:"MediaWiki namespace number (default 0, articles)"`
}

// LinksResult lists linked page titles
type LinksResult struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// CategoryArgs contains parameters for category listings
type CategoryArgs struct {
	Category string `json:"category" jsonschema:"required" jsonschema_description:"Category locator, e.g. 'Physics', 'Category:Physics' or 'de:Physik'"`
}

// PageCategoriesArgs contains parameters for listing a page's categories
type PageCategoriesArgs struct {
	Subject string `json:"subject" jsonschema:"required" jsonschema_description:"Page locator, e.g. 'Berlin' or 'de:Berlin'"`
}

// TitlesResult lists page or category titles
type TitlesResult struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

// GeoSearchArgs contains parameters for the articles-around-a-point lookup
type GeoSearchArgs struct {
	Point        string `json:"point" jsonschema:"required" jsonschema_description:"Coordinates as 'lat,lon', e.g. '52.52,13.40'"`
	Language     string `json:"language,omitempty" jsonschema_description:"Language edition to search (default from server config)"`
	RadiusMeters int    `json:"radius_meters,omitempty" jsonschema_description:"Search radius in meters, clamped to [10, 10000] (default 1000)"`
	Limit        int    `json:"limit,omitempty" jsonschema_description:"Maximum results (default 50, max 500)"`
}

// GeoSearchResult lists articles near a point, nearest first
type GeoSearchResult struct {
	Articles []GeoResult `json:"articles"`
	Count    int         `json:"count"`
}

// CoordinatesArgs contains parameters for the page coordinates lookup
type CoordinatesArgs struct {
	Subject string `json:"subject" jsonschema:"required" jsonschema_description:"Page locator, e.g. 'Berlin' or 'de:Berlin'"`
}

// CoordinatesResult is the primary coordinate of a page
type CoordinatesResult struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Found bool    `json:"found"`
}

// PageEditsArgs contains parameters for the edit history lookup
type PageEditsArgs struct {
	Subject string `json:"subject" jsonschema:"required" jsonschema_description:"Page locator, e.g. 'Berlin' or 'de:Berlin'"`
	Start   string `json:"start,omitempty" jsonschema_description:"Oldest edit to include, RFC 3339 or YYYY-MM-DD"`
	End     string `json:"end,omitempty" jsonschema_description:"Newest edit to include, RFC 3339 or YYYY-MM-DD"`
	Limit   int    `json:"limit,omitempty" jsonschema_description:"Maximum revisions to return"`
}

// PageEditsResult lists revisions, newest first
type PageEditsResult struct {
	Revisions []Revision `json:"revisions"`
	Count     int        `json:"count"`
}
