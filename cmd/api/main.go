package main

import (
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/d01ki/TechBook/internal/aggregator"
	"github.com/d01ki/TechBook/internal/config"
	"github.com/d01ki/TechBook/internal/handler"
	"github.com/d01ki/TechBook/internal/logger"
	"github.com/d01ki/TechBook/internal/metadata"
	"github.com/d01ki/TechBook/pkg/feeds"
)

func main() {

	godotenv.Load()

	slog.SetDefault(logger.New("api"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	agg := aggregator.New(
		feeds.DefaultSearchClients(cfg.AdapterTimeout),
		feeds.DefaultTrendingClients(cfg.AdapterTimeout),
		metadata.NewFetcher(cfg.PreviewTimeout),
		aggregator.Options{
			EnrichLimit:       cfg.EnrichLimit,
			TrendingPerSource: cfg.TrendingPerSource,
			EnrichConcurrency: cfg.EnrichConcurrency,
		},
	)

	articleHandler := handler.NewArticleHandler(agg)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/search", articleHandler.Search)
	r.GET("/api/trends", articleHandler.Trends)
	r.GET("/health", articleHandler.GetHealth)

	err = r.Run(cfg.BindAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
