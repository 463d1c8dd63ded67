// Package normalize maps raw feed items from any platform into canonical
// Articles: it fills defaults, deduplicates by URL and orders by date.
package normalize

import (
	"sort"
	"time"

	"github.com/d01ki/TechBook/internal/model"
	"github.com/d01ki/TechBook/pkg/feeds"
)

const untitled = "Untitled"

// Layouts tried for feeds whose timestamp string did not parse upstream.
var publishedLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
}

// Normalize converts raw items into Articles. Items without a link are
// dropped, the first occurrence of each URL wins, and the result is sorted
// by publication date, newest first. The sort is stable, so items published
// at the same instant keep their input order.
func Normalize(items []feeds.RawArticle) []model.Article {
	articles := make([]model.Article, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if item.Link == "" {
			continue
		}
		if _, ok := seen[item.Link]; ok {
			continue
		}
		seen[item.Link] = struct{}{}

		title := item.Title
		if title == "" {
			title = untitled
		}

		articles = append(articles, model.Article{
			Title:       title,
			URL:         item.Link,
			Source:      item.Source,
			PublishedAt: publishedAt(item),
		})
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	return articles
}

func publishedAt(item feeds.RawArticle) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}

	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, item.Published); err == nil {
			return t
		}
	}

	return time.Now()
}
