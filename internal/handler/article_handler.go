package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d01ki/TechBook/internal/model"
)

type Pipeline interface {
	Search(ctx context.Context, keyword string, page int) ([]model.Article, error)
	Trending(ctx context.Context) ([]model.Article, error)
}

type ArticleHandler struct {
	pipeline Pipeline
}

func NewArticleHandler(pipeline Pipeline) *ArticleHandler {
	return &ArticleHandler{pipeline: pipeline}
}

func (h *ArticleHandler) Search(c *gin.Context) {
	keyword := c.Query("q")
	if strings.TrimSpace(keyword) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	page := getQueryPage(c)

	articles, err := h.pipeline.Search(c.Request.Context(), keyword, page)
	if err != nil {
		slog.Error("error searching articles", "keyword", keyword, "page", page, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, NewArticleListResponse(articles))
}

func (h *ArticleHandler) Trends(c *gin.Context) {
	articles, err := h.pipeline.Trending(c.Request.Context())
	if err != nil {
		slog.Error("error fetching trending articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	c.JSON(http.StatusOK, NewArticleListResponse(articles))
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func getQueryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
