package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/d01ki/TechBook/internal/aggregator"
	"github.com/d01ki/TechBook/internal/config"
	"github.com/d01ki/TechBook/internal/handler"
	"github.com/d01ki/TechBook/internal/logger"
	"github.com/d01ki/TechBook/internal/metadata"
	"github.com/d01ki/TechBook/pkg/feeds"
)

// One-shot pipeline run: search every source for a keyword and print the
// merged result as JSON.
func main() {

	godotenv.Load()

	slog.SetDefault(logger.New("search"))

	if len(os.Args) < 2 {
		log.Fatal("usage: search <keyword> [page]")
	}

	keyword := os.Args[1]
	page := 1
	if len(os.Args) > 2 {
		parsed, err := strconv.Atoi(os.Args[2])
		if err != nil || parsed < 1 {
			log.Fatalf("invalid page %q", os.Args[2])
		}
		page = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	agg := aggregator.New(
		feeds.DefaultSearchClients(cfg.AdapterTimeout),
		feeds.DefaultTrendingClients(cfg.AdapterTimeout),
		metadata.NewFetcher(cfg.PreviewTimeout),
		aggregator.Options{
			EnrichLimit:       cfg.EnrichLimit,
			TrendingPerSource: cfg.TrendingPerSource,
			EnrichConcurrency: cfg.EnrichConcurrency,
		},
	)

	articles, err := agg.Search(context.Background(), keyword, page)
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	out, err := json.MarshalIndent(handler.NewArticleListResponse(articles), "", "  ")
	if err != nil {
		log.Fatalf("error encoding result: %v", err)
	}

	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))

	slog.Info("search complete", "keyword", keyword, "page", page, "total", len(articles))
}
