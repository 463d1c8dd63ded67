package feeds

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// Source identifies the publishing platform an article came from.
type Source string

const (
	SourceQiita  Source = "Qiita"
	SourceZenn   Source = "Zenn"
	SourceHatena Source = "Hatena"
	SourceNote   Source = "Note"
)

// RawArticle is a feed item as one platform delivered it, before
// normalization. Upstream feeds are not schema-guaranteed, so every field
// except Source may be empty.
type RawArticle struct {
	Title           string
	Link            string
	Published       string
	PublishedParsed *time.Time
	Source          Source
}

// SearchClient fetches keyword-scoped articles from one platform.
type SearchClient interface {
	Search(ctx context.Context, keyword string, page int) ([]RawArticle, error)
	Name() string
}

// TrendingClient is implemented by platforms that expose a latest/hot feed.
type TrendingClient interface {
	Trending(ctx context.Context) ([]RawArticle, error)
	Name() string
}

// DefaultSearchClients returns the platform adapters in the fixed
// concatenation order the aggregate uses.
func DefaultSearchClients(timeout time.Duration) []SearchClient {
	return []SearchClient{
		NewQiitaClient(timeout),
		NewZennClient(timeout),
		NewHatenaClient(timeout),
		NewNoteClient(timeout),
	}
}

// DefaultTrendingClients returns the adapters whose platform exposes a
// latest/hot feed.
func DefaultTrendingClients(timeout time.Duration) []TrendingClient {
	return []TrendingClient{
		NewZennClient(timeout),
		NewHatenaClient(timeout),
	}
}

func fetchFeed(ctx context.Context, client *http.Client, feedURL string, source Source) ([]RawArticle, error) {
	fp := gofeed.NewParser()
	fp.Client = client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		raw := RawArticle{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
			Source:    source,
		}
		if item.PublishedParsed != nil {
			raw.PublishedParsed = item.PublishedParsed
		}
		items = append(items, raw)
	}

	return items, nil
}
