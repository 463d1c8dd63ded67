package handler

import (
	"time"

	"github.com/d01ki/TechBook/internal/model"
)

type ArticleResponse struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Bookmarks   *int   `json:"bookmarks,omitempty"`
}

type ArticleListResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
}

// NewArticleListResponse converts pipeline output into the wire shape.
// Enrichment fields that are absent are omitted, not zeroed.
func NewArticleListResponse(articles []model.Article) ArticleListResponse {
	res := ArticleListResponse{
		Articles: make([]ArticleResponse, 0, len(articles)),
		Total:    len(articles),
	}

	for _, a := range articles {
		res.Articles = append(res.Articles, ArticleResponse{
			Title:       a.Title,
			URL:         a.URL,
			Source:      string(a.Source),
			PublishedAt: a.PublishedAt.Format(time.RFC3339),
			Image:       a.Image,
			Description: a.Description,
			Bookmarks:   a.Bookmarks,
		})
	}

	return res
}
