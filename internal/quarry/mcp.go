package quarry

import "context"

// LatestResultArgs contains parameters for the latest-result lookup
type LatestResultArgs struct {
	QueryID int `json:"query_id" jsonschema:"required" jsonschema_description:"Numeric ID of a saved Quarry query"`
}

// LatestResultResult is the latest run of a saved query
type LatestResultResult struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Count   int        `json:"count"`
}

// LatestResultMCP is the MCP wrapper for LatestResult
func (c *Client) LatestResultMCP(ctx context.Context, args LatestResultArgs) (LatestResultResult, error) {
	result, err := c.LatestResult(ctx, args.QueryID)
	if err != nil {
		return LatestResultResult{}, err
	}
	return LatestResultResult{
		Headers: result.Headers,
		Rows:    result.Rows,
		Count:   len(result.Rows),
	}, nil
}
