// Package metadata enriches articles with social-proof and page-preview
// data. Everything here is best-effort: a fetch that fails, times out or
// returns garbage leaves the corresponding fields absent.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/d01ki/TechBook/internal/model"
)

const (
	bookmarkCountURL = "https://bookmark.hatenaapis.com/count/entry"

	// Some article pages refuse requests without a browser user agent.
	userAgent = "Mozilla/5.0"

	maxBodyBytes      = 1 << 20
	maxDescriptionLen = 100
)

type Fetcher struct {
	httpClient     *http.Client
	previewTimeout time.Duration
}

func NewFetcher(previewTimeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient:     &http.Client{},
		previewTimeout: previewTimeout,
	}
}

// Fetch gathers metadata for one article page. It never returns an error;
// partial results are the norm and an empty Enrichment is a valid outcome.
func (f *Fetcher) Fetch(ctx context.Context, articleURL string) model.Enrichment {
	var enrichment model.Enrichment

	if count, ok := f.bookmarkCount(ctx, articleURL); ok {
		enrichment.Bookmarks = &count
	}

	f.preview(ctx, articleURL, &enrichment)

	return enrichment
}

// bookmarkCount asks the Hatena count API how many times the page has been
// bookmarked. The endpoint answers with a bare integer body; a literal "0"
// counts as present.
func (f *Fetcher) bookmarkCount(ctx context.Context, articleURL string) (int, bool) {
	countURL := fmt.Sprintf("%s?url=%s", bookmarkCountURL, url.QueryEscape(articleURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, countURL, nil)
	if err != nil {
		return 0, false
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return 0, false
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil || count < 0 {
		return 0, false
	}

	return count, true
}

// preview fetches the article page under a hard timeout and pulls Open
// Graph image and description tags out of it. The timeout cancels only
// this request, never the caller's context.
func (f *Fetcher) preview(ctx context.Context, articleURL string, enrichment *model.Enrichment) {
	ctx, cancel := context.WithTimeout(ctx, f.previewTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return
	}

	if image, ok := metaContent(doc, `meta[property="og:image"]`); ok {
		enrichment.Image = image
	}

	description, ok := metaContent(doc, `meta[property="og:description"]`)
	if !ok {
		description, ok = metaContent(doc, `meta[name="description"]`)
	}
	if ok {
		enrichment.Description = truncate(description, maxDescriptionLen)
	}
}

func metaContent(doc *goquery.Document, selector string) (string, bool) {
	content, exists := doc.Find(selector).First().Attr("content")
	if !exists || content == "" {
		return "", false
	}
	return content, true
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
