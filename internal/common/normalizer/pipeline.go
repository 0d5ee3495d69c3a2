package normalizer

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/project-tktt/go-ausjobs/internal/common/cleaner"
	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// Field length caps matching the storage schema.
const (
	maxTitleLen     = 200
	maxCompanyLen   = 200
	maxLocationLen  = 100
	maxSalaryRawLen = 200
)

// Config is the per-scraper configuration surface: home market defaults
// plus the vocabulary/denylist tables, all externally overridable.
type Config struct {
	HomeCountry     string
	DefaultCurrency string
	StateTable      map[string]string
	Boilerplate     []string
	Skills          SkillsConfig

	// Now supplies the reference time for relative-date resolution;
	// defaults to time.Now.
	Now func() time.Time
}

// Pipeline composes the normalization components into the single
// fragment-to-record operation. It is stateless after construction and
// safe for concurrent use; the shared tables are read-only.
type Pipeline struct {
	cleaner  *cleaner.Cleaner
	location *LocationResolver
	salary   *SalaryParser
	dates    *DateResolver
	types    *JobTypeClassifier
	skills   *SkillsExtractor
	now      func() time.Time
}

// New builds a Pipeline; zero config fields use the Australian defaults.
func New(cfg Config) *Pipeline {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		cleaner:  cleaner.New(cleaner.Config{ExtraBoilerplate: cfg.Boilerplate}),
		location: NewLocationResolver(cfg.HomeCountry, cfg.StateTable),
		salary:   NewSalaryParser(cfg.DefaultCurrency),
		dates:    NewDateResolver(),
		types:    NewJobTypeClassifier(),
		skills:   NewSkillsExtractor(cfg.Skills),
		now:      now,
	}
}

// Salary exposes the parser for display-string rendering at call sites.
func (p *Pipeline) Salary() *SalaryParser { return p.salary }

// Chain is an ordered list of field extractors tried in sequence until one
// yields a non-empty result. All field types share this one abstraction
// instead of hand-duplicated fallback passes.
type Chain []func(*domain.RawJobFragment) string

// Extract runs the chain, returning the first non-blank value.
func (c Chain) Extract(frag *domain.RawJobFragment) string {
	for _, fn := range c {
		if v := strings.TrimSpace(fn(frag)); v != "" {
			return v
		}
	}
	return ""
}

var salaryLineRe = regexp.MustCompile(`(?i)^.*(?:\$|salary|remuneration|package).*\d.*$`)

// salaryChain prefers the labeled salary field; otherwise it hunts for a
// salary-looking line inside the description.
var salaryChain = Chain{
	func(f *domain.RawJobFragment) string { return f.Salary },
	func(f *domain.RawJobFragment) string {
		for _, line := range strings.Split(f.Description, "\n") {
			if salaryLineRe.MatchString(strings.TrimSpace(line)) {
				return line
			}
		}
		return ""
	},
}

var typeHintChain = Chain{
	func(f *domain.RawJobFragment) string { return f.JobTypeHint },
	func(f *domain.RawJobFragment) string { return f.Title },
	func(f *domain.RawJobFragment) string { return f.Description },
}

var postedLineRe = regexp.MustCompile(`(?i)posted\s+(\d+\s*(?:hour|day|week|month)s?\s*ago|today|yesterday)`)

var postedChain = Chain{
	func(f *domain.RawJobFragment) string { return f.Posted },
	func(f *domain.RawJobFragment) string {
		if m := postedLineRe.FindStringSubmatch(f.Description); m != nil {
			return m[1]
		}
		return ""
	},
}

// Assemble normalizes one fragment into a storable record. It is total:
// missing or malformed fields resolve to the documented defaults, so the
// returned record always satisfies the storage constraints.
func (p *Pipeline) Assemble(frag *domain.RawJobFragment) *domain.JobRecord {
	now := frag.ScrapedAt
	if now.IsZero() {
		now = p.now()
	}

	description := p.cleaner.Clean(frag.Description)

	salaryText := salaryChain.Extract(frag)
	var salary domain.Salary
	if strings.TrimSpace(frag.Salary) != "" {
		salary = p.salary.Parse(salaryText)
	} else {
		// Description-derived text is unstructured; apply the
		// plausibility band.
		salary = p.salary.ParseLoose(salaryText)
	}
	// Description-derived raw text can be a whole sentence.
	salary.RawText = truncate(salary.RawText, maxSalaryRawLen)

	company := strings.TrimSpace(frag.Company)
	if company == "" {
		company = domain.UnknownCompany
	}

	modeText := typeHintChain.Extract(frag) + "\n" + description
	skills := p.skills.Extract(description, frag.Title)

	loc := p.location.Resolve(frag.Location)
	loc.City = truncate(loc.City, maxLocationLen)
	loc.State = truncate(loc.State, maxLocationLen)

	return &domain.JobRecord{
		ExternalID:      ExternalID(frag.URL),
		ExternalURL:     strings.TrimSpace(frag.URL),
		Source:          frag.Source,
		Title:           truncate(strings.TrimSpace(frag.Title), maxTitleLen),
		Company:         truncate(company, maxCompanyLen),
		Location:        loc,
		Salary:          salary,
		JobType:         p.types.ClassifyType(typeHintChain.Extract(frag)),
		WorkMode:        p.types.ClassifyWorkMode(modeText),
		Description:     description,
		DescriptionHTML: p.cleaner.MinimalHTML(description),
		Skills:          skills.Required,
		PreferredSkills: skills.Preferred,
		PostedAt:        p.dates.Resolve(postedChain.Extract(frag), now),
		ScrapedAt:       now,
	}
}

var trailingIDRe = regexp.MustCompile(`(\d{5,})/?$`)

// ExternalID derives a stable identifier from the job URL: an embedded
// numeric ID when the site exposes one, else a short hash of the URL.
func ExternalID(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	if u, err := url.Parse(rawURL); err == nil {
		for _, key := range []string{"jobid", "job_id", "id"} {
			if v := u.Query().Get(key); v != "" {
				return v
			}
		}
		if m := trailingIDRe.FindStringSubmatch(strings.TrimRight(u.Path, "/")); m != nil {
			return m[1]
		}
	}

	h := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(h[:8])
}

// truncate caps s at max runes, cutting back to the last word boundary so
// storage constraints never split a word.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
