package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type NoteClient struct {
	httpClient *http.Client
}

func NewNoteClient(timeout time.Duration) *NoteClient {
	return &NoteClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *NoteClient) Name() string {
	return string(SourceNote)
}

func (c *NoteClient) Search(ctx context.Context, keyword string, page int) ([]RawArticle, error) {
	// The hashtag feed has no pagination mechanism.
	if page > 1 {
		return nil, nil
	}

	feedURL := fmt.Sprintf(
		"https://note.com/hashtag/%s/rss",
		url.PathEscape(strings.ToLower(keyword)),
	)

	items, err := fetchFeed(ctx, c.httpClient, feedURL, SourceNote)
	if err != nil {
		return nil, fmt.Errorf("note search: %w", err)
	}

	return items, nil
}
