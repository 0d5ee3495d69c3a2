package module

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/project-tktt/go-ausjobs/internal/common/extractor"
	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// FragmentHandler is a callback for processing fragments from each page.
type FragmentHandler func(frags []*domain.RawJobFragment) error

// Crawler is the common interface for all job-board crawlers.
type Crawler interface {
	// Crawl fetches fragments from the source.
	Crawl(ctx context.Context) ([]*domain.RawJobFragment, error)
	// CrawlWithCallback fetches fragments page by page and calls handler
	// after each page, so downstream publishing starts immediately.
	CrawlWithCallback(ctx context.Context, handler FragmentHandler) error
	// Source returns the source identifier.
	Source() string
}

// Config holds per-crawler pagination settings.
type Config struct {
	MaxPages     int
	RequestDelay time.Duration
	// FetchDetail controls whether each listing hit is followed to its
	// detail page. Off, list-card fields are all a fragment gets.
	FetchDetail bool
}

// PagedCrawler walks a listing URL page by page through a selector-driven
// extractor. Site packages only supply the source name, listing URL, and
// selectors; everything else is shared here.
type PagedCrawler struct {
	source     string
	listingURL string
	extractor  extractor.Extractor
	config     Config
}

// NewPagedCrawler creates a crawler for one listing URL.
func NewPagedCrawler(source, listingURL string, ext extractor.Extractor, cfg Config) *PagedCrawler {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 10
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = 2 * time.Second
	}
	return &PagedCrawler{
		source:     source,
		listingURL: listingURL,
		extractor:  ext,
		config:     cfg,
	}
}

// Source returns the source identifier.
func (c *PagedCrawler) Source() string {
	return c.source
}

// Crawl fetches all pages and returns the accumulated fragments.
func (c *PagedCrawler) Crawl(ctx context.Context) ([]*domain.RawJobFragment, error) {
	var all []*domain.RawJobFragment
	err := c.CrawlWithCallback(ctx, func(frags []*domain.RawJobFragment) error {
		all = append(all, frags...)
		return nil
	})
	return all, err
}

// CrawlWithCallback fetches pages sequentially, invoking handler per page.
func (c *PagedCrawler) CrawlWithCallback(ctx context.Context, handler FragmentHandler) error {
	total := 0

	for page := 1; page <= c.config.MaxPages; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		log.Printf("[%s] Crawling page %d/%d", c.source, page, c.config.MaxPages)

		frags, err := c.extractor.ExtractList(ctx, c.listingURL, page)
		if err != nil {
			log.Printf("[%s] Error on page %d: %v", c.source, page, err)
			continue
		}

		if len(frags) == 0 {
			log.Printf("[%s] No more jobs on page %d, stopping", c.source, page)
			break
		}

		if c.config.FetchDetail {
			frags = c.fetchDetails(ctx, frags)
		}

		total += len(frags)
		if err := handler(frags); err != nil {
			return err
		}

		c.sleep(ctx)
	}

	log.Printf("[%s] Crawled %d jobs", c.source, total)
	return nil
}

func (c *PagedCrawler) fetchDetails(ctx context.Context, frags []*domain.RawJobFragment) []*domain.RawJobFragment {
	out := make([]*domain.RawJobFragment, 0, len(frags))

	for _, frag := range frags {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		if frag.URL == "" {
			continue
		}

		detail, err := c.extractor.Extract(ctx, frag.URL)
		if err != nil {
			log.Printf("[%s] Error extracting %s: %v", c.source, frag.URL, err)
			// Keep the list-card fragment rather than dropping the job.
			out = append(out, frag)
			continue
		}

		// List cards sometimes carry fields the detail page omits.
		if detail.Title == "" {
			detail.Title = frag.Title
		}
		if detail.Company == "" {
			detail.Company = frag.Company
		}
		if detail.Location == "" {
			detail.Location = frag.Location
		}
		if detail.Salary == "" {
			detail.Salary = frag.Salary
		}
		if detail.Posted == "" {
			detail.Posted = frag.Posted
		}

		out = append(out, detail)
		c.sleep(ctx)
	}

	return out
}

// sleep waits the configured delay plus up to 100% jitter.
func (c *PagedCrawler) sleep(ctx context.Context) {
	delay := c.config.RequestDelay + time.Duration(rand.Int63n(int64(c.config.RequestDelay)+1))
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}
