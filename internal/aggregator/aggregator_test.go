package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/d01ki/TechBook/internal/model"
	"github.com/d01ki/TechBook/pkg/feeds"
)

type fakeSearcher struct {
	name  string
	items []feeds.RawArticle
	err   error
}

func (f *fakeSearcher) Search(ctx context.Context, keyword string, page int) ([]feeds.RawArticle, error) {
	return f.items, f.err
}

func (f *fakeSearcher) Name() string {
	return f.name
}

type fakeTrender struct {
	name  string
	items []feeds.RawArticle
	err   error
}

func (f *fakeTrender) Trending(ctx context.Context) ([]feeds.RawArticle, error) {
	return f.items, f.err
}

func (f *fakeTrender) Name() string {
	return f.name
}

// fakeEnricher records requested URLs and tags each result with its URL so
// tests can verify positional merging.
type fakeEnricher struct {
	mu   sync.Mutex
	urls []string
}

func (f *fakeEnricher) Fetch(ctx context.Context, articleURL string) model.Enrichment {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, articleURL)
	count := len(articleURL)
	return model.Enrichment{
		Description: "meta for " + articleURL,
		Bookmarks:   &count,
	}
}

func rawItem(title, link string, source feeds.Source, published time.Time) feeds.RawArticle {
	return feeds.RawArticle{
		Title:           title,
		Link:            link,
		Source:          source,
		PublishedParsed: &published,
	}
}

func day(d int) time.Time {
	return time.Date(2026, 2, d, 12, 0, 0, 0, time.UTC)
}

func newTestAggregator(searchers []feeds.SearchClient, trenders []feeds.TrendingClient) (*Aggregator, *fakeEnricher) {
	enricher := &fakeEnricher{}
	agg := New(searchers, trenders, enricher, Options{
		EnrichLimit:       15,
		TrendingPerSource: 10,
		EnrichConcurrency: 4,
	})
	return agg, enricher
}

func TestSearchEmptyKeyword(t *testing.T) {
	agg, _ := newTestAggregator(nil, nil)

	_, err := agg.Search(context.Background(), "  ", 1)

	if !errors.Is(err, ErrEmptyKeyword) {
		t.Fatalf("expected ErrEmptyKeyword, got %v", err)
	}
}

func TestSearchSurvivesFailingSource(t *testing.T) {
	searchers := []feeds.SearchClient{
		&fakeSearcher{name: "Qiita", items: []feeds.RawArticle{
			rawItem("qiita post", "https://qiita.com/a", feeds.SourceQiita, day(18)),
		}},
		&fakeSearcher{name: "Zenn", items: []feeds.RawArticle{
			rawItem("zenn post", "https://zenn.dev/a", feeds.SourceZenn, day(20)),
		}},
		&fakeSearcher{name: "Hatena", err: errors.New("upstream down")},
		&fakeSearcher{name: "Note", items: []feeds.RawArticle{
			rawItem("note post", "https://note.com/a", feeds.SourceNote, day(19)),
		}},
	}

	agg, _ := newTestAggregator(searchers, nil)

	articles, err := agg.Search(context.Background(), "golang", 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
	assert.Equal(t, "zenn post", articles[0].Title)
	assert.Equal(t, "note post", articles[1].Title)
	assert.Equal(t, "qiita post", articles[2].Title)

	for _, a := range articles {
		assert.NotEqual(t, feeds.SourceHatena, a.Source)
	}
}

func TestSearchDedupsAcrossSources(t *testing.T) {
	shared := "https://example.com/shared"
	searchers := []feeds.SearchClient{
		&fakeSearcher{name: "Qiita", items: []feeds.RawArticle{
			rawItem("first copy", shared, feeds.SourceQiita, day(20)),
		}},
		&fakeSearcher{name: "Hatena", items: []feeds.RawArticle{
			rawItem("second copy", shared, feeds.SourceHatena, day(20)),
		}},
	}

	agg, _ := newTestAggregator(searchers, nil)

	articles, err := agg.Search(context.Background(), "golang", 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "first copy", articles[0].Title)
	assert.Equal(t, feeds.SourceQiita, articles[0].Source)
}

func TestSearchTotalOutageIsEmptySuccess(t *testing.T) {
	searchers := []feeds.SearchClient{
		&fakeSearcher{name: "Qiita", err: errors.New("down")},
		&fakeSearcher{name: "Zenn", err: errors.New("down")},
	}

	agg, _ := newTestAggregator(searchers, nil)

	articles, err := agg.Search(context.Background(), "golang", 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestSearchEnrichesOnlyPrefix(t *testing.T) {
	var items []feeds.RawArticle
	for i := 0; i < 20; i++ {
		items = append(items, rawItem(
			fmt.Sprintf("post %d", i),
			fmt.Sprintf("https://example.com/%d", i),
			feeds.SourceQiita,
			day(20).Add(-time.Duration(i)*time.Hour),
		))
	}

	searchers := []feeds.SearchClient{&fakeSearcher{name: "Qiita", items: items}}

	enricher := &fakeEnricher{}
	agg := New(searchers, nil, enricher, Options{
		EnrichLimit:       15,
		TrendingPerSource: 10,
		EnrichConcurrency: 4,
	})

	articles, err := agg.Search(context.Background(), "golang", 1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 20, len(articles))
	assert.Equal(t, 15, len(enricher.urls))

	// Enrichment lands on the article it was requested for and the list
	// keeps its pre-enrichment order.
	for i, a := range articles {
		assert.Equal(t, fmt.Sprintf("post %d", i), a.Title)
		if i < 15 {
			assert.Equal(t, "meta for "+a.URL, a.Description)
			if a.Bookmarks == nil {
				t.Fatalf("article %d missing enrichment", i)
			}
		} else {
			assert.Equal(t, "", a.Description)
			if a.Bookmarks != nil {
				t.Fatalf("article %d should not be enriched", i)
			}
		}
	}
}

func TestTrendingCapsEachSource(t *testing.T) {
	var zennItems, hatenaItems []feeds.RawArticle
	for i := 0; i < 15; i++ {
		zennItems = append(zennItems, rawItem(
			fmt.Sprintf("zenn %d", i),
			fmt.Sprintf("https://zenn.dev/%d", i),
			feeds.SourceZenn,
			day(20).Add(-time.Duration(i)*time.Minute),
		))
		hatenaItems = append(hatenaItems, rawItem(
			fmt.Sprintf("hatena %d", i),
			fmt.Sprintf("https://example.com/%d", i),
			feeds.SourceHatena,
			day(19).Add(-time.Duration(i)*time.Minute),
		))
	}

	trenders := []feeds.TrendingClient{
		&fakeTrender{name: "Zenn", items: zennItems},
		&fakeTrender{name: "Hatena", items: hatenaItems},
	}

	agg, _ := newTestAggregator(nil, trenders)

	articles, err := agg.Trending(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 20, len(articles))

	counts := map[feeds.Source]int{}
	for _, a := range articles {
		counts[a.Source]++
	}
	assert.Equal(t, 10, counts[feeds.SourceZenn])
	assert.Equal(t, 10, counts[feeds.SourceHatena])
}

func TestTrendingGloballySorted(t *testing.T) {
	// Hatena's newest item is newer than Zenn's oldest, so a plain
	// concatenation of the per-source lists would not be sorted.
	trenders := []feeds.TrendingClient{
		&fakeTrender{name: "Zenn", items: []feeds.RawArticle{
			rawItem("zenn new", "https://zenn.dev/a", feeds.SourceZenn, day(20)),
			rawItem("zenn old", "https://zenn.dev/b", feeds.SourceZenn, day(10)),
		}},
		&fakeTrender{name: "Hatena", items: []feeds.RawArticle{
			rawItem("hatena mid", "https://example.com/a", feeds.SourceHatena, day(15)),
		}},
	}

	agg, _ := newTestAggregator(nil, trenders)

	articles, err := agg.Trending(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
	assert.Equal(t, "zenn new", articles[0].Title)
	assert.Equal(t, "hatena mid", articles[1].Title)
	assert.Equal(t, "zenn old", articles[2].Title)
}

func TestTrendingEnrichesEverything(t *testing.T) {
	trenders := []feeds.TrendingClient{
		&fakeTrender{name: "Zenn", items: []feeds.RawArticle{
			rawItem("a", "https://zenn.dev/a", feeds.SourceZenn, day(20)),
			rawItem("b", "https://zenn.dev/b", feeds.SourceZenn, day(19)),
		}},
	}

	agg, enricher := newTestAggregator(nil, trenders)

	articles, err := agg.Trending(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	assert.Equal(t, 2, len(enricher.urls))

	for _, a := range articles {
		assert.Equal(t, "meta for "+a.URL, a.Description)
	}
}

func TestTrendingFailingSourceDegrades(t *testing.T) {
	trenders := []feeds.TrendingClient{
		&fakeTrender{name: "Zenn", err: errors.New("down")},
		&fakeTrender{name: "Hatena", items: []feeds.RawArticle{
			rawItem("hatena", "https://example.com/a", feeds.SourceHatena, day(20)),
		}},
	}

	agg, _ := newTestAggregator(nil, trenders)

	articles, err := agg.Trending(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, feeds.SourceHatena, articles[0].Source)
}
