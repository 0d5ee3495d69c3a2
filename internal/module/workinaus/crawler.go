package workinaus

import (
	extractor2 "github.com/project-tktt/go-ausjobs/internal/common/extractor"
	"github.com/project-tktt/go-ausjobs/internal/module"
)

const (
	Source     = "workinaus"
	BaseURL    = "https://www.workinaus.com.au"
	ListingURL = "https://www.workinaus.com.au/job/searchJobs?page=%d"
)

// NewCrawler creates a crawler for WorkinAUS listings.
func NewCrawler(extCfg extractor2.Config, cfg module.Config) *module.PagedCrawler {
	cfg.FetchDetail = true

	selectors := extractor2.Selectors{
		JobItem: "div.job-card",
		JobLink: "a.job-card-link",

		Title:       "h1.job-detail-title",
		Company:     "div.company-name",
		Location:    "div.job-location",
		Salary:      "div.job-salary",
		JobTypeHint: "div.job-type",
		Posted:      "div.posted-date",
		Description: "div.job-description",
	}

	ext := extractor2.NewCollyExtractor(Source, selectors, extCfg)
	return module.NewPagedCrawler(Source, ListingURL, ext, cfg)
}
