package seek

import (
	"time"

	extractor2 "github.com/project-tktt/go-ausjobs/internal/common/extractor"
	"github.com/project-tktt/go-ausjobs/internal/module"
)

const (
	Source     = "seek"
	BaseURL    = "https://www.seek.com.au"
	ListingURL = "https://www.seek.com.au/jobs?page=%d"
)

// NewCrawler creates a crawler for Seek listings.
func NewCrawler(extCfg extractor2.Config, cfg module.Config) *module.PagedCrawler {
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = 3 * time.Second
	}
	cfg.FetchDetail = true

	selectors := extractor2.Selectors{
		JobItem: "article[data-automation='normalJob']",
		JobLink: "a[data-automation='jobTitle']",

		Title:       "h1[data-automation='job-detail-title']",
		Company:     "span[data-automation='advertiser-name']",
		Location:    "span[data-automation='job-detail-location']",
		Salary:      "span[data-automation='job-detail-salary']",
		JobTypeHint: "span[data-automation='job-detail-work-type']",
		Posted:      "span[data-automation='job-detail-date']",
		Description: "div[data-automation='jobAdDetails']",
	}

	ext := extractor2.NewCollyExtractor(Source, selectors, extCfg)
	return module.NewPagedCrawler(Source, ListingURL, ext, cfg)
}
