// Wikicell MCP Server - A Model Context Protocol server for Wikimedia data
// Exposes Wikipedia, Wikidata, pageview statistics, Quarry results, and
// Google Suggest as spreadsheet-friendly lookup tools.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikicell-mcp-server/internal/base"
	"github.com/olgasafonova/wikicell-mcp-server/internal/pageviews"
	"github.com/olgasafonova/wikicell-mcp-server/internal/quarry"
	"github.com/olgasafonova/wikicell-mcp-server/internal/suggest"
	"github.com/olgasafonova/wikicell-mcp-server/internal/wikidata"
	"github.com/olgasafonova/wikicell-mcp-server/internal/wikipedia"
	"github.com/olgasafonova/wikicell-mcp-server/tools"
	"github.com/olgasafonova/wikicell-mcp-server/tracing"
)

const (
	ServerName    = "wikicell-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Set up distributed tracing (no-op unless enabled via OTEL_* variables)
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	opts := clientOptions(config, logger)

	wikipediaClient := wikipedia.NewClient(config.DefaultLanguage, opts...)
	wikidataClient := wikidata.NewClient(config.DefaultLanguage, opts...)
	pageviewsClient := pageviews.NewClient(config.DefaultLanguage, opts...)
	quarryClient := quarry.NewClient(opts...)
	suggestClient := suggest.NewClient(config.DefaultLanguage, opts...)

	defer wikipediaClient.Close()
	defer wikidataClient.Close()
	defer pageviewsClient.Close()
	defer quarryClient.Close()
	defer suggestClient.Close()

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `Wikicell MCP Server provides read-only lookup tools over public Wikimedia data sources.

Subjects accept an optional language prefix: "de:Berlin" reads the German Wikipedia, "Berlin" uses the configured default language. Prefixes only match short language codes, so titles like "Category:Physics" pass through unchanged.

Available tools:
- wikipedia_translations: Titles of a page in other language editions
- wikipedia_synonyms: Redirects pointing at a page (alternative names)
- wikipedia_expand: Translations plus their redirects in one call
- wikipedia_outbound_links: Pages a page links to
- wikipedia_inbound_links: Pages linking to a page
- wikipedia_mutual_links: Pages linked in both directions
- wikipedia_category_members: Articles in a category
- wikipedia_subcategories: Subcategories of a category
- wikipedia_page_categories: Categories a page belongs to
- wikipedia_geo_search: Articles near a coordinate
- wikipedia_coordinates: Coordinates of a page
- wikipedia_page_edits: Revision history of a page
- wikidata_entity: Resolve a title to a Wikidata Q-identifier
- wikidata_facts: Statements about an entity as labeled rows
- wikidata_labels: Entity labels per language
- wikidata_descriptions: Entity descriptions per language
- wikimedia_pageviews: Daily or monthly view counts for an article
- quarry_latest_result: Latest result set of a public Quarry query
- google_suggest: Autocomplete suggestions for a search phrase

Configure via environment variables:
- WIKICELL_DEFAULT_LANGUAGE: Language for unprefixed subjects (default: en)
- WIKICELL_TIMEOUT: Upstream HTTP timeout (default: 30s)
- WIKICELL_USER_AGENT: User-Agent sent to the APIs
- WIKICELL_MAX_RETRIES: Retry budget for transient failures (default: 3)`,
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(
		wikipediaClient,
		wikidataClient,
		pageviewsClient,
		quarryClient,
		suggestClient,
		logger,
	)
	registry.RegisterAll(server)

	logger.Info("Starting Wikicell MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"default_language", config.DefaultLanguage,
		"timeout", config.Timeout,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// clientOptions translates server configuration into upstream client options.
func clientOptions(config *Config, logger *slog.Logger) []base.ClientOption {
	opts := []base.ClientOption{
		base.WithLogger(logger),
		base.WithTimeout(config.Timeout),
		base.WithMaxRetry(config.MaxRetries),
	}
	if config.UserAgent != "" {
		opts = append(opts, base.WithUserAgent(config.UserAgent))
	}
	return opts
}
