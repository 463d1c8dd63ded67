package model

import (
	"time"

	"github.com/d01ki/TechBook/pkg/feeds"
)

// Article is the canonical, platform-agnostic result record. Instances are
// built fresh per request and never mutated after enrichment is merged in.
type Article struct {
	Title       string
	URL         string
	Source      feeds.Source
	PublishedAt time.Time
	Enrichment
}

// Enrichment carries the optional best-effort page metadata. A zero value
// means "absent": empty strings for Image/Description, nil for Bookmarks.
// A nil Bookmarks is distinct from an article with zero bookmarks.
type Enrichment struct {
	Image       string
	Description string
	Bookmarks   *int
}
