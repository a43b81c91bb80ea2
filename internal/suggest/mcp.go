package suggest

import "context"

// SuggestionsArgs contains parameters for the autocomplete lookup
type SuggestionsArgs struct {
	Query    string `json:"query" jsonschema:"required" jsonschema_description:"Partial search phrase to complete"`
	Language string `json:"language,omitempty" jsonschema_description:"Interface language code (default from server config)"`
}

// SuggestionsResult lists completions in the provider's ranking order
type SuggestionsResult struct {
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
}

// SuggestionsMCP is the MCP wrapper for Suggestions
func (c *Client) SuggestionsMCP(ctx context.Context, args SuggestionsArgs) (SuggestionsResult, error) {
	suggestions, err := c.Suggestions(ctx, args.Query, args.Language)
	if err != nil {
		return SuggestionsResult{}, err
	}
	return SuggestionsResult{Suggestions: suggestions, Count: len(suggestions)}, nil
}
