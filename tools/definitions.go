package tools

// AllTools contains all tool specifications for the wikicell MCP server.
// Tools are organized by source for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// WIKIPEDIA LANGUAGE TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_translations",
		Method:   "Translations",
		Title:    "Article Translations",
		Category: "language",
		Source:   "wikipedia",
		Description: `List an article's titles across Wikipedia language editions.

USE WHEN: User asks "what is X called in German", "translate the article title", "which languages cover X".

NOT FOR: Translating arbitrary text (this only maps article titles), or alternative names within one language (use wikipedia_synonyms).

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)
- languages: Restrict to these language codes (optional)

RETURNS: One row per language edition: language code and title. The source article is the first row.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_synonyms",
		Method:   "Synonyms",
		Title:    "Article Synonyms",
		Category: "language",
		Source:   "wikipedia",
		Description: `List the redirect titles pointing at an article: its alternative names in one language.

USE WHEN: User asks "other names for X", "what redirects to X", "spelling variants of X".

NOT FOR: Titles in other languages (use wikipedia_translations).

PARAMETERS:
- subject: Page locator like 'NYC' or 'en:NYC' (required)

RETURNS: Redirect titles, deduplicated.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_expand",
		Method:   "Expand",
		Title:    "Expand Article Names",
		Category: "language",
		Source:   "wikipedia",
		Description: `Collect every known name of a subject: translations across language editions plus each edition's redirect titles.

USE WHEN: User wants an exhaustive multilingual name list, e.g. for matching or deduplication.

NOT FOR: A quick single-language lookup (use wikipedia_synonyms) or plain title translation (use wikipedia_translations). This tool performs one request per language and is slower.

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)
- languages: Restrict the fan-out to these language codes (optional)

RETURNS: One row per name: language code and title.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WIKIPEDIA LINK TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_outbound_links",
		Method:   "OutboundLinks",
		Title:    "Outbound Links",
		Category: "links",
		Source:   "wikipedia",
		Description: `List the articles a page links to.

USE WHEN: User asks "what does X link to", "references from X".

NOT FOR: Pages linking TO the article (use wikipedia_inbound_links).

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)
- namespace: MediaWiki namespace number (default 0, articles)

RETURNS: Linked article titles in page order.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_inbound_links",
		Method:   "InboundLinks",
		Title:    "Inbound Links",
		Category: "links",
		Source:   "wikipedia",
		Description: `List the articles linking to a page, redirects excluded.

USE WHEN: User asks "what links to X", "which pages mention X".

NOT FOR: Links FROM the article (use wikipedia_outbound_links) or redirect titles (use wikipedia_synonyms).

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)
- namespace: MediaWiki namespace number (default 0, articles)

RETURNS: Linking article titles.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_mutual_links",
		Method:   "MutualLinks",
		Title:    "Mutual Links",
		Category: "links",
		Source:   "wikipedia",
		Description: `List the articles that both link to and are linked from a page: the intersection of its inbound and outbound links.

USE WHEN: User asks "which pages link back", "strongly related articles".

NOT FOR: One-directional link lists (use wikipedia_outbound_links or wikipedia_inbound_links).

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)
- namespace: MediaWiki namespace number (default 0, articles)

RETURNS: Mutually linked titles in outbound order.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WIKIPEDIA CATEGORY TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_category_members",
		Method:   "CategoryMembers",
		Title:    "Category Members",
		Category: "categories",
		Source:   "wikipedia",
		Description: `List the articles directly contained in a category.

USE WHEN: User asks "which articles are in category X", "list everything under X".

NOT FOR: Nested categories (use wikipedia_subcategories) or the categories OF a page (use wikipedia_page_categories).

PARAMETERS:
- category: Category locator; the 'Category:' prefix is optional (required)

RETURNS: Article titles, direct members only.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_subcategories",
		Method:   "Subcategories",
		Title:    "Subcategories",
		Category: "categories",
		Source:   "wikipedia",
		Description: `List the categories directly contained in a category.

USE WHEN: User asks "what subcategories does X have", "browse the category tree".

NOT FOR: The articles in a category (use wikipedia_category_members).

PARAMETERS:
- category: Category locator; the 'Category:' prefix is optional (required)

RETURNS: Subcategory titles, direct children only.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_page_categories",
		Method:   "PageCategories",
		Title:    "Page Categories",
		Category: "categories",
		Source:   "wikipedia",
		Description: `List the non-hidden categories an article belongs to.

USE WHEN: User asks "how is X categorized", "what topics does X belong to".

NOT FOR: The contents of a category (use wikipedia_category_members).

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)

RETURNS: Category titles.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WIKIPEDIA GEO TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_geo_search",
		Method:   "GeoSearch",
		Title:    "Articles Around a Point",
		Category: "geo",
		Source:   "wikipedia",
		Description: `Find articles near a geographic coordinate.

USE WHEN: User asks "what is near 52.52,13.40", "articles around this location".

NOT FOR: The coordinate OF a known article (use wikipedia_coordinates).

PARAMETERS:
- point: Coordinates as 'lat,lon' (required)
- language: Language edition to search (optional)
- radius_meters: Search radius, clamped to [10, 10000] (default 1000)
- limit: Maximum results (default 50)

RETURNS: Titles with coordinates and distance in meters, nearest first.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_coordinates",
		Method:   "Coordinates",
		Title:    "Article Coordinates",
		Category: "geo",
		Source:   "wikipedia",
		Description: `Look up the primary coordinate of an article.

USE WHEN: User asks "where is X", "coordinates of X".

NOT FOR: Finding articles near a point (use wikipedia_geo_search).

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)

RETURNS: Latitude and longitude, plus a found flag for pages without a coordinate.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WIKIPEDIA HISTORY TOOLS
	// ==========================================================================
	{
		Name:     "wikipedia_page_edits",
		Method:   "PageEdits",
		Title:    "Page Edit History",
		Category: "history",
		Source:   "wikipedia",
		Description: `List an article's revision history.

USE WHEN: User asks "who edited X", "recent changes to X", "edit activity between two dates".

NOT FOR: View statistics (use wikimedia_pageviews).

PARAMETERS:
- subject: Page locator like 'Berlin' or 'de:Berlin' (required)
- start: Oldest edit to include, YYYY-MM-DD (optional)
- end: Newest edit to include, YYYY-MM-DD (optional)
- limit: Maximum revisions (optional)

RETURNS: Rows of timestamp, user, comment, and page size, newest first.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WIKIDATA TOOLS
	// ==========================================================================
	{
		Name:     "wikidata_entity",
		Method:   "ResolveEntity",
		Title:    "Resolve Entity ID",
		Category: "entities",
		Source:   "wikidata",
		Description: `Resolve a page locator to its Wikidata entity ID.

USE WHEN: User needs the Q-number behind an article, e.g. to feed into other Wikidata queries.

NOT FOR: The entity's data itself (use wikidata_facts, wikidata_labels or wikidata_descriptions, which resolve locators on their own).

PARAMETERS:
- subject: Entity ID (Q64, passed through) or page locator like 'de:Berlin' (required)

RETURNS: The entity ID.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikidata_facts",
		Method:   "Facts",
		Title:    "Entity Facts",
		Category: "entities",
		Source:   "wikidata",
		Description: `List an entity's structured claims as property/value rows with human-readable labels.

USE WHEN: User asks "facts about X", "population of X", "what is X an instance of".

NOT FOR: Free-text article content or names in many languages (use wikidata_labels).

PARAMETERS:
- subject: Entity ID (Q64) or page locator like 'de:Berlin' (required)
- properties: Restrict to property IDs like ['P31','P1082'] (optional)
- mode: 'first', 'all' (default) or 'single-only' for multi-valued properties
- language: Label language (optional)

RETURNS: Rows of property ID, property label, and value. Entity values are resolved to labels; dates and coordinates are normalized.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikidata_labels",
		Method:   "Labels",
		Title:    "Entity Labels",
		Category: "entities",
		Source:   "wikidata",
		Description: `List an entity's names across languages.

USE WHEN: User asks "what is X called in other languages" at the data level.

NOT FOR: Article titles (use wikipedia_translations) or one-line summaries (use wikidata_descriptions).

PARAMETERS:
- subject: Entity ID (Q64) or page locator like 'de:Berlin' (required)
- languages: Language codes to return; empty means all (optional)

RETURNS: Rows of language code and label.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikidata_descriptions",
		Method:   "Descriptions",
		Title:    "Entity Descriptions",
		Category: "entities",
		Source:   "wikidata",
		Description: `List an entity's short descriptions across languages.

USE WHEN: User asks "short description of X", "one-liner about X in French".

NOT FOR: Names (use wikidata_labels) or structured data (use wikidata_facts).

PARAMETERS:
- subject: Entity ID (Q64) or page locator like 'de:Berlin' (required)
- languages: Language codes to return; empty means all (optional)

RETURNS: Rows of language code and description.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// METRICS TOOLS
	// ==========================================================================
	{
		Name:     "wikimedia_pageviews",
		Method:   "Pageviews",
		Title:    "Article Pageviews",
		Category: "metrics",
		Source:   "pageviews",
		Description: `Fetch view counts for an article over a date range.

USE WHEN: User asks "how popular is X", "views of X last month", "traffic trend for X".

NOT FOR: Edit activity (use wikipedia_page_edits).

PARAMETERS:
- subject: Article locator like 'Berlin' or 'de:Berlin' (required)
- granularity: 'daily' (default) or 'monthly'
- start: First date, YYYY-MM-DD (default 30 days ago)
- end: Last date, YYYY-MM-DD (default today)

RETURNS: Rows of date and view count, newest first.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// QUARRY TOOLS
	// ==========================================================================
	{
		Name:     "quarry_latest_result",
		Method:   "QuarryLatest",
		Title:    "Quarry Query Result",
		Category: "data",
		Source:   "quarry",
		Description: `Fetch the latest result set of a saved Quarry query (the Wikimedia public SQL sandbox).

USE WHEN: User references a Quarry query by ID or URL, e.g. "get the data from quarry query 12345".

NOT FOR: Running new SQL; Quarry only publishes results of saved queries.

PARAMETERS:
- query_id: Numeric ID of the saved query (required)

RETURNS: The column headers and all data rows of the latest run.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SUGGEST TOOLS
	// ==========================================================================
	{
		Name:     "google_suggest",
		Method:   "Suggest",
		Title:    "Search Suggestions",
		Category: "suggest",
		Source:   "google",
		Description: `Fetch Google autocomplete suggestions for a phrase.

USE WHEN: User asks "what do people search for after X", "autocomplete for X".

NOT FOR: Wikipedia article lookups (use the wikipedia_* tools).

PARAMETERS:
- query: Partial search phrase (required)
- language: Interface language code (optional)

RETURNS: Suggested completions in ranking order.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
