package wikidata

import (
	"context"
	"fmt"
)

// MCP Tool wrapper methods
// These methods wrap the client methods with Args/Result types for MCP integration.

// ResolveEntityMCP is the MCP wrapper for ResolveEntity
func (c *Client) ResolveEntityMCP(ctx context.Context, args EntityArgs) (EntityResult, error) {
	id, err := c.ResolveEntity(ctx, args.Subject)
	if err != nil {
		return EntityResult{}, err
	}
	return EntityResult{ID: id}, nil
}

// FactsMCP is the MCP wrapper for Facts
func (c *Client) FactsMCP(ctx context.Context, args FactsArgs) (FactsResult, error) {
	opts := &FactsOptions{
		Properties: args.Properties,
		Language:   args.Language,
	}
	switch args.Mode {
	case "":
		opts.Mode = ModeAll
	case string(ModeFirst), string(ModeAll), string(ModeSingleOnly):
		opts.Mode = ValueMode(args.Mode)
	default:
		return FactsResult{}, fmt.Errorf("invalid mode %q, expected first, all or single-only", args.Mode)
	}

	facts, err := c.Facts(ctx, args.Subject, opts)
	if err != nil {
		return FactsResult{}, err
	}
	return FactsResult{Facts: facts, Count: len(facts)}, nil
}

// LabelsMCP is the MCP wrapper for Labels
func (c *Client) LabelsMCP(ctx context.Context, args TermsArgs) (TermsResult, error) {
	values, err := c.Labels(ctx, args.Subject, args.Languages)
	if err != nil {
		return TermsResult{}, err
	}
	return TermsResult{Values: values, Count: len(values)}, nil
}

// DescriptionsMCP is the MCP wrapper for Descriptions
func (c *Client) DescriptionsMCP(ctx context.Context, args TermsArgs) (TermsResult, error) {
	values, err := c.Descriptions(ctx, args.Subject, args.Languages)
	if err != nil {
		return TermsResult{}, err
	}
	return TermsResult{Values: values, Count: len(values)}, nil
}
