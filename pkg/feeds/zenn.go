package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ZennClient struct {
	httpClient *http.Client
}

func NewZennClient(timeout time.Duration) *ZennClient {
	return &ZennClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ZennClient) Name() string {
	return string(SourceZenn)
}

func (c *ZennClient) Search(ctx context.Context, keyword string, page int) ([]RawArticle, error) {
	// The topic feed has no pagination mechanism.
	if page > 1 {
		return nil, nil
	}

	feedURL := fmt.Sprintf(
		"https://zenn.dev/topics/%s/feed",
		url.PathEscape(strings.ToLower(keyword)),
	)

	items, err := fetchFeed(ctx, c.httpClient, feedURL, SourceZenn)
	if err != nil {
		return nil, fmt.Errorf("zenn search: %w", err)
	}

	return items, nil
}

// Trending fetches the site-wide latest feed.
func (c *ZennClient) Trending(ctx context.Context) ([]RawArticle, error) {
	items, err := fetchFeed(ctx, c.httpClient, "https://zenn.dev/feed", SourceZenn)
	if err != nil {
		return nil, fmt.Errorf("zenn trending: %w", err)
	}

	return items, nil
}
