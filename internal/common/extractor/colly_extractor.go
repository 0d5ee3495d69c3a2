package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// CollyExtractor scrapes job boards with Colly, driven entirely by a
// Selectors table so per-site adapters stay thin and disposable.
type CollyExtractor struct {
	collector *colly.Collector
	config    Config
	source    string
	selectors Selectors
}

// Selectors defines the CSS selectors for one job board.
type Selectors struct {
	// List page
	JobItem string
	JobLink string

	// Detail page; all optional
	Title       string
	Company     string
	Location    string
	Salary      string
	Posted      string
	JobTypeHint string
	Description string
}

// NewCollyExtractor creates a selector-driven extractor for one source.
func NewCollyExtractor(source string, selectors Selectors, config Config) *CollyExtractor {
	c := colly.NewCollector(
		colly.UserAgent(config.UserAgent),
		colly.AllowURLRevisit(),
	)

	if config.RequestDelay > 0 {
		c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Delay:       time.Duration(config.RequestDelay) * time.Millisecond,
			RandomDelay: time.Duration(config.RequestDelay/2) * time.Millisecond,
		})
	}

	if config.ProxyURL != "" {
		c.SetProxy(config.ProxyURL)
	}

	return &CollyExtractor{
		collector: c,
		config:    config,
		source:    source,
		selectors: selectors,
	}
}

func (e *CollyExtractor) Name() string {
	return fmt.Sprintf("colly_%s", e.source)
}

// Extract fetches one detail page into a fragment. Field text is captured
// verbatim; interpretation belongs to the normalization pipeline.
func (e *CollyExtractor) Extract(ctx context.Context, url string) (*domain.RawJobFragment, error) {
	var frag *domain.RawJobFragment
	var extractErr error

	collector := e.collector.Clone()

	collector.OnHTML("body", func(el *colly.HTMLElement) {
		f := &domain.RawJobFragment{
			URL:       url,
			Source:    e.source,
			ScrapedAt: time.Now(),
		}

		if e.selectors.Title != "" {
			f.Title = strings.TrimSpace(el.ChildText(e.selectors.Title))
		}
		if e.selectors.Company != "" {
			f.Company = strings.TrimSpace(el.ChildText(e.selectors.Company))
		}
		if e.selectors.Location != "" {
			f.Location = strings.TrimSpace(el.ChildText(e.selectors.Location))
		}
		if e.selectors.Salary != "" {
			f.Salary = strings.TrimSpace(el.ChildText(e.selectors.Salary))
		}
		if e.selectors.Posted != "" {
			f.Posted = strings.TrimSpace(el.ChildText(e.selectors.Posted))
		}
		if e.selectors.JobTypeHint != "" {
			f.JobTypeHint = strings.TrimSpace(el.ChildText(e.selectors.JobTypeHint))
		}
		if e.selectors.Description != "" {
			// Keep the raw HTML: the cleaner needs the structure.
			desc, _ := el.DOM.Find(e.selectors.Description).Html()
			f.Description = desc
		}

		frag = f
	})

	collector.OnError(func(r *colly.Response, err error) {
		extractErr = fmt.Errorf("colly error: %w (status: %d)", err, r.StatusCode)
	})

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("visit url: %w", err)
	}

	if extractErr != nil {
		return nil, extractErr
	}

	if frag == nil {
		return nil, fmt.Errorf("no data extracted from %s", url)
	}

	return frag, nil
}

// ExtractList fetches a listing page and returns one shallow fragment per
// job card; detail fields are filled by a follow-up Extract call.
func (e *CollyExtractor) ExtractList(ctx context.Context, listURL string, page int) ([]*domain.RawJobFragment, error) {
	var frags []*domain.RawJobFragment
	var extractErr error

	collector := e.collector.Clone()

	collector.OnHTML(e.selectors.JobItem, func(el *colly.HTMLElement) {
		link := el.ChildAttr(e.selectors.JobLink, "href")
		if link == "" {
			return
		}

		frag := &domain.RawJobFragment{
			URL:       el.Request.AbsoluteURL(link),
			Source:    e.source,
			ScrapedAt: time.Now(),
		}
		if e.selectors.Title != "" {
			frag.Title = strings.TrimSpace(el.ChildText(e.selectors.Title))
		}
		if e.selectors.Company != "" {
			frag.Company = strings.TrimSpace(el.ChildText(e.selectors.Company))
		}
		if e.selectors.Location != "" {
			frag.Location = strings.TrimSpace(el.ChildText(e.selectors.Location))
		}
		if e.selectors.Salary != "" {
			frag.Salary = strings.TrimSpace(el.ChildText(e.selectors.Salary))
		}
		if e.selectors.Posted != "" {
			frag.Posted = strings.TrimSpace(el.ChildText(e.selectors.Posted))
		}

		frags = append(frags, frag)
	})

	collector.OnError(func(r *colly.Response, err error) {
		extractErr = fmt.Errorf("colly error: %w (status: %d)", err, r.StatusCode)
	})

	url := listURL
	if page > 1 && strings.Contains(listURL, "%d") {
		url = fmt.Sprintf(listURL, page)
	}

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("visit list url: %w", err)
	}

	if extractErr != nil {
		return nil, extractErr
	}

	return frags, nil
}
