package normalizer

import (
	"strings"
	"testing"
	"time"

	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipeline() *Pipeline {
	return New(Config{
		HomeCountry:     "Australia",
		DefaultCurrency: "AUD",
		Now:             func() time.Time { return fixedNow },
	})
}

func TestAssembleFullFragment(t *testing.T) {
	p := testPipeline()

	rec := p.Assemble(&domain.RawJobFragment{
		URL:         "https://jobs.example.com.au/listing/5501923",
		Source:      "example",
		Title:       "  Senior Data Analyst  ",
		Company:     "Acme Analytics",
		Location:    "Parramatta, NSW",
		Salary:      "$90,000 - $110,000 per annum",
		Description: "<p>Join our team.</p><ul><li>SQL required</li><li>Excel required</li></ul>",
		Posted:      "3 days ago",
		JobTypeHint: "Full-time",
		ScrapedAt:   fixedNow,
	})

	assert.Equal(t, "5501923", rec.ExternalID)
	assert.Equal(t, "Senior Data Analyst", rec.Title)
	assert.Equal(t, "Acme Analytics", rec.Company)
	assert.Equal(t, "Parramatta", rec.Location.City)
	assert.Equal(t, "New South Wales", rec.Location.State)
	assert.Equal(t, "Australia", rec.Location.Country)
	require.True(t, rec.Salary.HasValue())
	assert.Equal(t, 90000.0, *rec.Salary.Min)
	assert.Equal(t, 110000.0, *rec.Salary.Max)
	assert.Equal(t, domain.TypeFullTime, rec.JobType)
	assert.Equal(t, fixedNow.AddDate(0, 0, -3), rec.PostedAt)
	assert.Contains(t, rec.Skills, "SQL")
	assert.Contains(t, rec.Skills, "Excel")
	assert.Contains(t, rec.Description, "- SQL required")
	assert.Contains(t, rec.DescriptionHTML, "<li>")
}

func TestAssembleEmptyFragmentIsTotal(t *testing.T) {
	p := testPipeline()

	rec := p.Assemble(&domain.RawJobFragment{URL: "https://example.com/j/1"})

	assert.Equal(t, domain.UnknownCompany, rec.Company)
	assert.Equal(t, "Australia", rec.Location.Country)
	assert.Equal(t, "", rec.Location.City)
	assert.False(t, rec.Salary.HasValue())
	assert.Equal(t, domain.TypeFullTime, rec.JobType)
	assert.Equal(t, domain.ModeUnspecified, rec.WorkMode)
	assert.Equal(t, fixedNow, rec.PostedAt)
	assert.Empty(t, rec.Skills)
	assert.NotEmpty(t, rec.ExternalID)
}

func TestAssembleSalaryFallsBackToDescription(t *testing.T) {
	p := testPipeline()

	rec := p.Assemble(&domain.RawJobFragment{
		URL:         "https://example.com/j/2",
		Description: "Great role.\nRemuneration: $85,000 plus super.\nStart Monday.",
	})

	require.True(t, rec.Salary.HasValue())
	assert.Equal(t, 85000.0, *rec.Salary.Min)
}

func TestAssembleSalaryRawTextIsCapped(t *testing.T) {
	p := testPipeline()

	// The salary line doubles as a long marketing sentence; the parsed
	// figures survive and the stored raw text stays within the column cap.
	line := "Remuneration: $85,000 plus super for the right candidate, " +
		strings.Repeat("with a generous benefits program ", 12) + "."
	rec := p.Assemble(&domain.RawJobFragment{
		URL:         "https://example.com/j/8",
		Description: "Great role.\n" + line + "\nStart Monday.",
	})

	require.True(t, rec.Salary.HasValue())
	assert.Equal(t, 85000.0, *rec.Salary.Min)
	assert.LessOrEqual(t, len(rec.Salary.RawText), 200)
	assert.NotEmpty(t, rec.Salary.RawText)
}

func TestAssembleDescriptionSalaryIsBanded(t *testing.T) {
	p := testPipeline()

	// A lone small number in the description is not a salary.
	rec := p.Assemble(&domain.RawJobFragment{
		URL:         "https://example.com/j/3",
		Description: "Salary review after 6 months, ref $12 voucher on signup.",
	})
	assert.False(t, rec.Salary.HasValue())
}

func TestAssembleWorkModeFromDescription(t *testing.T) {
	p := testPipeline()

	rec := p.Assemble(&domain.RawJobFragment{
		URL:         "https://example.com/j/4",
		Title:       "Engineer",
		Description: "Hybrid arrangement: 2 days remote, 3 in office.",
	})
	assert.Equal(t, domain.ModeHybrid, rec.WorkMode)
}

func TestAssembleTitleTruncationAtWordBoundary(t *testing.T) {
	p := testPipeline()

	long := strings.Repeat("Senior Distributed Systems Engineer ", 10)
	rec := p.Assemble(&domain.RawJobFragment{URL: "https://example.com/j/5", Title: long})

	assert.LessOrEqual(t, len(rec.Title), 200)
	assert.False(t, strings.HasSuffix(rec.Title, " "))
	// The cap lands between words, never inside one.
	for _, w := range strings.Fields(rec.Title) {
		assert.Contains(t, []string{"Senior", "Distributed", "Systems", "Engineer"}, w)
	}
}

func TestAssembleSkillsPartitionStaysDisjoint(t *testing.T) {
	p := testPipeline()

	rec := p.Assemble(&domain.RawJobFragment{
		URL:         "https://example.com/j/6",
		Description: "Python and SQL are essential.\n\nTableau would be desirable.",
	})

	for _, s := range rec.PreferredSkills {
		assert.NotContains(t, rec.Skills, s)
	}
	assert.Contains(t, rec.Skills, "Python")
	assert.Contains(t, rec.PreferredSkills, "Tableau")
}

func TestExternalIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://x.com/job/12345678":           "12345678",
		"https://x.com/job/12345678/":          "12345678",
		"https://x.com/apply?jobid=9911":       "9911",
		"https://x.com/apply?id=77421":         "77421",
		"https://x.com/roles/senior-gardener":  "",
		"": "",
	}
	for url, want := range cases {
		got := ExternalID(url)
		if want == "" && url != "" {
			// Falls back to a stable hash.
			assert.Len(t, got, 16, url)
			assert.Equal(t, got, ExternalID(url), url)
			continue
		}
		assert.Equal(t, want, got, url)
	}
}

func TestChainStopsAtFirstHit(t *testing.T) {
	calls := 0
	c := Chain{
		func(*domain.RawJobFragment) string { calls++; return "" },
		func(*domain.RawJobFragment) string { calls++; return "hit" },
		func(*domain.RawJobFragment) string { calls++; return "later" },
	}
	assert.Equal(t, "hit", c.Extract(&domain.RawJobFragment{}))
	assert.Equal(t, 2, calls)
}

func TestAssembleUsesScrapedAtAsReference(t *testing.T) {
	p := testPipeline()

	scraped := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	rec := p.Assemble(&domain.RawJobFragment{
		URL:       "https://example.com/j/7",
		Posted:    "yesterday",
		ScrapedAt: scraped,
	})
	assert.Equal(t, time.Date(2023, 5, 31, 9, 0, 0, 0, time.UTC), rec.PostedAt)
}
