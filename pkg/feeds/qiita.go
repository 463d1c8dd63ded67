package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type QiitaClient struct {
	httpClient *http.Client
}

func NewQiitaClient(timeout time.Duration) *QiitaClient {
	return &QiitaClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *QiitaClient) Name() string {
	return string(SourceQiita)
}

func (c *QiitaClient) Search(ctx context.Context, keyword string, page int) ([]RawArticle, error) {
	// The tag feed has no pagination mechanism.
	if page > 1 {
		return nil, nil
	}

	feedURL := fmt.Sprintf(
		"https://qiita.com/tags/%s/feed",
		url.PathEscape(strings.ToLower(keyword)),
	)

	items, err := fetchFeed(ctx, c.httpClient, feedURL, SourceQiita)
	if err != nil {
		return nil, fmt.Errorf("qiita search: %w", err)
	}

	return items, nil
}
