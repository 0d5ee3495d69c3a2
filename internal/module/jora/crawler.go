package jora

import (
	extractor2 "github.com/project-tktt/go-ausjobs/internal/common/extractor"
	"github.com/project-tktt/go-ausjobs/internal/module"
)

const (
	Source     = "jora"
	BaseURL    = "https://au.jora.com"
	ListingURL = "https://au.jora.com/j?l=Australia&p=%d"
)

// NewCrawler creates a crawler for Jora listings. Jora cards carry enough
// fields that detail fetches stay optional.
func NewCrawler(extCfg extractor2.Config, cfg module.Config) *module.PagedCrawler {
	selectors := extractor2.Selectors{
		JobItem: "div.job-card",
		JobLink: "a.job-link",

		Title:       "h1.job-title",
		Company:     "span.company",
		Location:    "span.location",
		Salary:      "div.salary",
		Posted:      "span.listed-date",
		Description: "div#job-description-container",
	}

	ext := extractor2.NewCollyExtractor(Source, selectors, extCfg)
	return module.NewPagedCrawler(Source, ListingURL, ext, cfg)
}
