package domain

import "time"

// RawJobFragment holds the raw text captured for one job listing before
// normalization. Every field is optional free text extracted by a site
// adapter; blank values are valid and never an error.
type RawJobFragment struct {
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Description string    `json:"description"` // plain text or HTML
	Posted      string    `json:"posted"`      // "3 days ago", "12/03/2024", ...
	JobTypeHint string    `json:"job_type_hint"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// JobRecord is the canonical normalized job posting handed to storage.
type JobRecord struct {
	ExternalID      string    `json:"external_id"`
	ExternalURL     string    `json:"external_url"`
	Source          string    `json:"source"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        Location  `json:"location"`
	Salary          Salary    `json:"salary"`
	JobType         JobType   `json:"job_type"`
	WorkMode        WorkMode  `json:"work_mode"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html"`
	Skills          []string  `json:"skills"`
	PreferredSkills []string  `json:"preferred_skills"`
	PostedAt        time.Time `json:"posted_at"`
	ScrapedAt       time.Time `json:"scraped_at"`
}

// Location is a decomposed job location. City and State may be empty
// strings but never carry placeholder text; Country always has a value.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Salary holds a parsed salary. Min and Max are nil together when no
// numeric value could be recovered; RawText preserves the original display
// string ("Competitive", "$80k - $100k", ...).
type Salary struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
	Period   Period   `json:"period"`
	RawText  string   `json:"raw_text"`
}

// HasValue reports whether a numeric salary was recovered.
func (s Salary) HasValue() bool {
	return s.Min != nil && s.Max != nil
}

// Period is the time unit a salary figure is denominated in.
type Period string

const (
	PeriodHourly  Period = "hourly"
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// JobType is the closed set of employment types used by storage.
type JobType string

const (
	TypeFullTime   JobType = "full_time"
	TypePartTime   JobType = "part_time"
	TypeCasual     JobType = "casual"
	TypeContract   JobType = "contract"
	TypeTemporary  JobType = "temporary"
	TypeInternship JobType = "internship"
	TypeFreelance  JobType = "freelance"
)

// WorkMode classifies where the work is performed.
type WorkMode string

const (
	ModeRemote      WorkMode = "remote"
	ModeHybrid      WorkMode = "hybrid"
	ModeOnSite      WorkMode = "on_site"
	ModeUnspecified WorkMode = "unspecified"
)

// UnknownCompany is the sentinel used when a fragment carries no company.
const UnknownCompany = "Unknown Company"
