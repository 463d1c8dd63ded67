package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime knobs of the aggregation pipeline and its HTTP
// surface, loaded from environment variables.
type Config struct {
	BindAddr    string
	FrontendURL string

	// AdapterTimeout bounds every upstream feed fetch, so one hung source
	// cannot stall the whole aggregate.
	AdapterTimeout time.Duration
	// PreviewTimeout bounds the page fetch inside enrichment.
	PreviewTimeout time.Duration

	EnrichLimit       int
	TrendingPerSource int
	EnrichConcurrency int
}

// Load builds a Config from environment variables.
func Load() (*Config, error) {
	c := &Config{
		BindAddr:          getEnv("API_BIND_ADDR", ":8080"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		AdapterTimeout:    getDuration("ADAPTER_TIMEOUT", "5s"),
		PreviewTimeout:    getDuration("PREVIEW_TIMEOUT", "2s"),
		EnrichLimit:       getInt("ENRICH_LIMIT", 15),
		TrendingPerSource: getInt("TRENDING_PER_SOURCE", 10),
		EnrichConcurrency: getInt("ENRICH_CONCURRENCY", 8),
	}

	if c.AdapterTimeout <= 0 {
		return nil, fmt.Errorf("ADAPTER_TIMEOUT must be positive")
	}
	if c.PreviewTimeout <= 0 {
		return nil, fmt.Errorf("PREVIEW_TIMEOUT must be positive")
	}
	if c.EnrichLimit < 0 {
		return nil, fmt.Errorf("ENRICH_LIMIT cannot be negative")
	}
	if c.TrendingPerSource <= 0 {
		return nil, fmt.Errorf("TRENDING_PER_SOURCE must be positive")
	}
	if c.EnrichConcurrency <= 0 {
		return nil, fmt.Errorf("ENRICH_CONCURRENCY must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
