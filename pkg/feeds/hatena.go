package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const hatenaPageSize = 20

type HatenaClient struct {
	httpClient *http.Client
}

func NewHatenaClient(timeout time.Duration) *HatenaClient {
	return &HatenaClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HatenaClient) Name() string {
	return string(SourceHatena)
}

// Search runs a full-text bookmark search. Unlike the tag feeds this
// upstream paginates, via an item offset.
func (c *HatenaClient) Search(ctx context.Context, keyword string, page int) ([]RawArticle, error) {
	offset := (page - 1) * hatenaPageSize

	feedURL := fmt.Sprintf(
		"https://b.hatena.ne.jp/search/text?q=%s&mode=rss&of=%d",
		url.QueryEscape(keyword), offset,
	)

	items, err := fetchFeed(ctx, c.httpClient, feedURL, SourceHatena)
	if err != nil {
		return nil, fmt.Errorf("hatena search: %w", err)
	}

	return items, nil
}

// Trending fetches the IT hot-entry feed.
func (c *HatenaClient) Trending(ctx context.Context) ([]RawArticle, error) {
	items, err := fetchFeed(ctx, c.httpClient, "https://b.hatena.ne.jp/hotentry/it.rss", SourceHatena)
	if err != nil {
		return nil, fmt.Errorf("hatena trending: %w", err)
	}

	return items, nil
}
