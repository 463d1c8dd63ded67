// Package aggregator runs the aggregation pipeline: parallel source
// fan-out, normalization and bounded parallel enrichment.
package aggregator

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/d01ki/TechBook/internal/metadata"
	"github.com/d01ki/TechBook/internal/model"
	"github.com/d01ki/TechBook/internal/normalize"
	"github.com/d01ki/TechBook/pkg/feeds"
)

// ErrEmptyKeyword is returned by Search before any source is contacted.
var ErrEmptyKeyword = errors.New("search keyword is required")

// Enricher provides best-effort page metadata for one article URL.
type Enricher interface {
	Fetch(ctx context.Context, articleURL string) model.Enrichment
}

var _ Enricher = (*metadata.Fetcher)(nil)

// Options bound the enrichment work per request.
type Options struct {
	// EnrichLimit is how many leading search results get enriched.
	EnrichLimit int
	// TrendingPerSource caps each source's contribution to the trending
	// view, so one prolific feed cannot crowd out the others.
	TrendingPerSource int
	// EnrichConcurrency caps simultaneous enrichment fetches.
	EnrichConcurrency int
}

type Aggregator struct {
	searchers []feeds.SearchClient
	trenders  []feeds.TrendingClient
	enricher  Enricher
	opts      Options
}

func New(searchers []feeds.SearchClient, trenders []feeds.TrendingClient, enricher Enricher, opts Options) *Aggregator {
	return &Aggregator{
		searchers: searchers,
		trenders:  trenders,
		enricher:  enricher,
		opts:      opts,
	}
}

// Search fans out the keyword to every source in parallel, merges the
// results into one deduplicated date-ordered list and enriches its leading
// entries. A source that fails contributes nothing; the siblings are
// unaffected. An empty list is a valid result.
func (a *Aggregator) Search(ctx context.Context, keyword string, page int) ([]model.Article, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrEmptyKeyword
	}
	if page < 1 {
		page = 1
	}

	perSource := make([][]feeds.RawArticle, len(a.searchers))

	var g errgroup.Group
	for i, client := range a.searchers {
		g.Go(func() error {
			items, err := client.Search(ctx, keyword, page)
			if err != nil {
				slog.Error("source search failed", "source", client.Name(), "error", err)
				return nil
			}
			perSource[i] = items
			return nil
		})
	}
	g.Wait()

	var raw []feeds.RawArticle
	for _, items := range perSource {
		raw = append(raw, items...)
	}

	articles := normalize.Normalize(raw)
	a.enrich(ctx, articles, min(a.opts.EnrichLimit, len(articles)))

	return articles, nil
}

// Trending merges the latest/hot feeds of the sources that have one. Each
// source's list is normalized and capped on its own before the lists are
// combined, enriched and re-sorted by date. The second sort is required:
// concatenating independently sorted prefixes is not globally sorted.
func (a *Aggregator) Trending(ctx context.Context) ([]model.Article, error) {
	perSource := make([][]model.Article, len(a.trenders))

	var g errgroup.Group
	for i, client := range a.trenders {
		g.Go(func() error {
			items, err := client.Trending(ctx)
			if err != nil {
				slog.Error("source trending failed", "source", client.Name(), "error", err)
				return nil
			}
			articles := normalize.Normalize(items)
			if len(articles) > a.opts.TrendingPerSource {
				articles = articles[:a.opts.TrendingPerSource]
			}
			perSource[i] = articles
			return nil
		})
	}
	g.Wait()

	var combined []model.Article
	for _, articles := range perSource {
		combined = append(combined, articles...)
	}

	a.enrich(ctx, combined, len(combined))

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].PublishedAt.After(combined[j].PublishedAt)
	})

	return combined, nil
}

// enrich fills metadata into articles[:n] in place. Each worker writes only
// its own index, so results always land on the article they were fetched
// for, regardless of completion order.
func (a *Aggregator) enrich(ctx context.Context, articles []model.Article, n int) {
	var g errgroup.Group
	if a.opts.EnrichConcurrency > 0 {
		g.SetLimit(a.opts.EnrichConcurrency)
	}

	for i := range articles[:n] {
		g.Go(func() error {
			articles[i].Enrichment = a.enricher.Fetch(ctx, articles[i].URL)
			return nil
		})
	}
	g.Wait()
}
