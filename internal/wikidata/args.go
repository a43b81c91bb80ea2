package wikidata

// MCP argument and result types. Subjects accept either a bare entity ID
// (Q64) or a page locator ("de:Berlin") resolved through its sitelink.

// EntityArgs contains parameters for the entity ID lookup
type EntityArgs struct {
	Subject string `json:"subject" jsonschema:"required" jsonschema_description:"Entity ID (Q64) or page locator (de:Berlin)"`
}

// EntityResult is a resolved entity ID
type EntityResult struct {
	ID string `json:"id"`
}

// FactsArgs contains parameters for the claims lookup
type FactsArgs struct {
	Subject    string   `json:"subject" jsonschema:"required" jsonschema_description:"Entity ID (Q64) or page locator (de:Berlin)"`
	Properties []string `json:"properties,omitempty" jsonschema_description:"Restrict output to these property IDs, e.g. ['P31','P625']"`
	Mode       string   `json:"mode,omitempty" jsonschema_description:"Multi-value handling: 'first', 'all' (default) or 'single-only'"`
	Language   string   `json:"language,omitempty" jsonschema_description:"Language for property and value labels"`
}

// FactsResult lists flattened claims
type FactsResult struct {
	Facts []Fact `json:"facts"`
	Count int    `json:"count"`
}

// TermsArgs contains parameters for label and description lookups
type TermsArgs struct {
	Subject   string   `json:"subject" jsonschema:"required" jsonschema_description:"Entity ID (Q64) or page locator (de:Berlin)"`
	Languages []string `json:"languages,omitempty" jsonschema_description:"Language codes to return; empty means all"`
}

// TermsResult lists per-language values
type TermsResult struct {
	Values []LanguageValue `json:"values"`
	Count  int             `json:"count"`
}
