package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/wikidata"
	"github.com/olgasafonova/wikicell-mcp-server/internal/wikipedia"
)

// measureCachePerformance compares a cold lookup against a cached repeat
func measureCachePerformance(ctx context.Context, client *wikipedia.Client) {
	fmt.Println("=== Cache Performance Test ===")
	fmt.Println()

	fmt.Println("1. Translations Cache Test:")

	start := time.Now()
	_, err := client.Translations(ctx, "Berlin", nil)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	firstCall := time.Since(start)
	fmt.Printf("   First call (network):  %v\n", firstCall)

	start = time.Now()
	_, _ = client.Translations(ctx, "Berlin", nil)
	secondCall := time.Since(start)
	fmt.Printf("   Second call (cached):  %v\n", secondCall)
	if secondCall > 0 {
		fmt.Printf("   Speedup: %.0fx faster\n", float64(firstCall)/float64(secondCall))
	}
	fmt.Println()
}

// measureExpandFanOut times the translation + synonym fan-out against
// issuing the same lookups one page at a time
func measureExpandFanOut(ctx context.Context, client *wikipedia.Client) {
	fmt.Println("=== Expand Fan-Out Performance ===")
	fmt.Println()

	fmt.Println("2. Expand (translations + synonyms per language):")
	start := time.Now()
	expanded, err := client.Expand(ctx, "Berlin", []string{"de", "fr", "es"})
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	expandTime := time.Since(start)
	fmt.Printf("   Expand time: %v\n", expandTime)
	fmt.Printf("   Names collected: %d\n", len(expanded))
	fmt.Println()

	fmt.Println("3. Sequential Translations + Synonyms (for comparison):")
	start = time.Now()
	translations, err := client.Translations(ctx, "Berlin", []string{"de", "fr", "es"})
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	for _, tr := range translations {
		_, _ = client.Synonyms(ctx, tr.Language+":"+tr.Title)
	}
	sequentialTime := time.Since(start)
	fmt.Printf("   Sequential time: %v\n", sequentialTime)
	fmt.Println()
}

// measureEntityBatching shows the effect of chunked wbgetentities lookups
func measureEntityBatching(ctx context.Context, client *wikidata.Client) {
	fmt.Println("=== Wikidata Label Batching ===")
	fmt.Println()

	fmt.Println("4. Facts (property and entity labels fetched in one batch):")
	start := time.Now()
	facts, err := client.Facts(ctx, "Berlin", &wikidata.FactsOptions{Mode: wikidata.ModeAll})
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	factsTime := time.Since(start)
	fmt.Printf("   Facts time: %v\n", factsTime)
	fmt.Printf("   Rows returned: %d\n", len(facts))
	fmt.Println()
	fmt.Println("   Label lookups are chunked 50 identifiers per request,")
	fmt.Println("   so a 120-statement entity costs 3 label calls, not 120.")
	fmt.Println()
}

func main() {
	fmt.Println("Wikicell MCP Server - Performance Measurements")
	fmt.Println("==============================================")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := context.Background()

	wikipediaClient := wikipedia.NewClient("en", wikipedia.WithLogger(logger))
	defer wikipediaClient.Close()
	wikidataClient := wikidata.NewClient("en", wikidata.WithLogger(logger))
	defer wikidataClient.Close()

	measureCachePerformance(ctx, wikipediaClient)
	measureExpandFanOut(ctx, wikipediaClient)
	measureEntityBatching(ctx, wikidataClient)

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Key behaviors:")
	fmt.Println("• Caching: repeated lookups are served from memory, not the network")
	fmt.Println("• Deduplication: identical in-flight requests share one HTTP call")
	fmt.Println("• Batching: entity labels resolve 50 identifiers per request")
	fmt.Println("• Connection reuse: HTTP/2 + connection pooling reduces latency")
}
