package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikicell-mcp-server/internal/pageviews"
	"github.com/olgasafonova/wikicell-mcp-server/internal/quarry"
	"github.com/olgasafonova/wikicell-mcp-server/internal/suggest"
	"github.com/olgasafonova/wikicell-mcp-server/internal/wikidata"
	"github.com/olgasafonova/wikicell-mcp-server/internal/wikipedia"
	"github.com/olgasafonova/wikicell-mcp-server/metrics"
	"github.com/olgasafonova/wikicell-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	wikipediaClient *wikipedia.Client
	wikidataClient  *wikidata.Client
	pageviewsClient *pageviews.Client
	quarryClient    *quarry.Client
	suggestClient   *suggest.Client
	logger          *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(
	wikipediaClient *wikipedia.Client,
	wikidataClient *wikidata.Client,
	pageviewsClient *pageviews.Client,
	quarryClient *quarry.Client,
	suggestClient *suggest.Client,
	logger *slog.Logger,
) *HandlerRegistry {
	return &HandlerRegistry{
		wikipediaClient: wikipediaClient,
		wikidataClient:  wikidataClient,
		pageviewsClient: pageviewsClient,
		quarryClient:    quarryClient,
		suggestClient:   suggestClient,
		logger:          logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	// Wikipedia tools
	case "Translations":
		register(h, server, tool, spec, h.wikipediaClient.TranslationsMCP)
	case "Synonyms":
		register(h, server, tool, spec, h.wikipediaClient.SynonymsMCP)
	case "Expand":
		register(h, server, tool, spec, h.wikipediaClient.ExpandMCP)
	case "OutboundLinks":
		register(h, server, tool, spec, h.wikipediaClient.OutboundLinksMCP)
	case "InboundLinks":
		register(h, server, tool, spec, h.wikipediaClient.InboundLinksMCP)
	case "MutualLinks":
		register(h, server, tool, spec, h.wikipediaClient.MutualLinksMCP)
	case "CategoryMembers":
		register(h, server, tool, spec, h.wikipediaClient.CategoryMembersMCP)
	case "Subcategories":
		register(h, server, tool, spec, h.wikipediaClient.SubcategoriesMCP)
	case "PageCategories":
		register(h, server, tool, spec, h.wikipediaClient.PageCategoriesMCP)
	case "GeoSearch":
		register(h, server, tool, spec, h.wikipediaClient.GeoSearchMCP)
	case "Coordinates":
		register(h, server, tool, spec, h.wikipediaClient.CoordinatesMCP)
	case "PageEdits":
		register(h, server, tool, spec, h.wikipediaClient.PageEditsMCP)

	// Wikidata tools
	case "ResolveEntity":
		register(h, server, tool, spec, h.wikidataClient.ResolveEntityMCP)
	case "Facts":
		register(h, server, tool, spec, h.wikidataClient.FactsMCP)
	case "Labels":
		register(h, server, tool, spec, h.wikidataClient.LabelsMCP)
	case "Descriptions":
		register(h, server, tool, spec, h.wikidataClient.DescriptionsMCP)

	// Metrics tools
	case "Pageviews":
		register(h, server, tool, spec, h.pageviewsClient.PerArticleMCP)

	// Quarry tools
	case "QuarryLatest":
		register(h, server, tool, spec, h.quarryClient.LatestResultMCP)

	// Suggest tools
	case "Suggest":
		register(h, server, tool, spec, h.suggestClient.SuggestionsMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.String("mcp.tool.source", spec.Source),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "source", spec.Source}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case wikipedia.TranslationsArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikipedia.SynonymsArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikipedia.ExpandArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikipedia.LinksArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikipedia.CategoryArgs:
		attrs = append(attrs, "category", a.Category)
	case wikipedia.PageCategoriesArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikipedia.GeoSearchArgs:
		attrs = append(attrs, "point", a.Point)
	case wikipedia.CoordinatesArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikipedia.PageEditsArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikidata.EntityArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikidata.FactsArgs:
		attrs = append(attrs, "subject", a.Subject)
	case wikidata.TermsArgs:
		attrs = append(attrs, "subject", a.Subject)
	case pageviews.PageviewsArgs:
		attrs = append(attrs, "subject", a.Subject)
	case quarry.LatestResultArgs:
		attrs = append(attrs, "query_id", a.QueryID)
	case suggest.SuggestionsArgs:
		attrs = append(attrs, "query", a.Query)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case wikipedia.TranslationsResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.SynonymsResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.ExpandResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.LinksResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.TitlesResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.GeoSearchResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.CoordinatesResult:
		attrs = append(attrs, "found", r.Found)
	case wikipedia.PageEditsResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikidata.EntityResult:
		attrs = append(attrs, "entity_id", r.ID)
	case wikidata.FactsResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikidata.TermsResult:
		attrs = append(attrs, "results_count", r.Count)
	case pageviews.PageviewsResult:
		attrs = append(attrs, "results_count", r.Count)
	case quarry.LatestResultResult:
		attrs = append(attrs, "results_count", r.Count)
	case suggest.SuggestionsResult:
		attrs = append(attrs, "results_count", r.Count)
	}

	h.logger.Info("Tool executed", attrs...)
}
