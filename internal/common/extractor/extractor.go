package extractor

import (
	"context"

	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// Extractor is the boundary between site-specific scraping and the
// normalization core. Implementations fetch pages and emit raw fragments;
// they never interpret field content.
type Extractor interface {
	// Extract fetches one job detail page and captures its raw fields.
	Extract(ctx context.Context, url string) (*domain.RawJobFragment, error)

	// ExtractList fetches a listing page and captures one fragment per
	// discovered job.
	ExtractList(ctx context.Context, listURL string, page int) ([]*domain.RawJobFragment, error)

	// Name identifies the extractor in logs.
	Name() string
}

// Config holds common extractor settings.
type Config struct {
	UserAgent    string
	ProxyURL     string
	MaxRetries   int
	RequestDelay int // milliseconds
}
