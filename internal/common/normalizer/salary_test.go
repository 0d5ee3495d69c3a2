package normalizer

import (
	"testing"

	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	p := NewSalaryParser("AUD")

	s := p.Parse("$80,000 - $100,000 per year")
	require.True(t, s.HasValue())
	assert.Equal(t, 80000.0, *s.Min)
	assert.Equal(t, 100000.0, *s.Max)
	assert.Equal(t, "AUD", s.Currency)
	assert.Equal(t, domain.PeriodYearly, s.Period)
}

func TestParseKSuffixRange(t *testing.T) {
	p := NewSalaryParser("AUD")

	s := p.Parse("75-85k")
	require.True(t, s.HasValue())
	assert.Equal(t, 75000.0, *s.Min)
	assert.Equal(t, 85000.0, *s.Max)
	assert.Equal(t, domain.PeriodYearly, s.Period)
}

func TestParseSingleValue(t *testing.T) {
	p := NewSalaryParser("AUD")

	s := p.Parse("$95,000 package")
	require.True(t, s.HasValue())
	assert.Equal(t, 95000.0, *s.Min)
	assert.Equal(t, 95000.0, *s.Max)
}

func TestParseHourlyRateKeepsSmallNumbers(t *testing.T) {
	p := NewSalaryParser("AUD")

	// A labeled field is exempt from the plausibility band.
	s := p.Parse("$45/hr")
	require.True(t, s.HasValue())
	assert.Equal(t, 45.0, *s.Min)
	assert.Equal(t, domain.PeriodHourly, s.Period)
}

func TestParsePeriodPriority(t *testing.T) {
	p := NewSalaryParser("AUD")

	cases := map[string]domain.Period{
		"$40 per hour":           domain.PeriodHourly,
		"$800 per day":           domain.PeriodDaily,
		"$2,000 per week":        domain.PeriodWeekly,
		"$9,000 per month":       domain.PeriodMonthly,
		"$95,000 per annum":      domain.PeriodYearly,
		"$95,000":                domain.PeriodYearly,
		"$40 hourly rate + super": domain.PeriodHourly,
	}
	for input, want := range cases {
		assert.Equal(t, want, p.Parse(input).Period, input)
	}
}

func TestParseTextOnlySalary(t *testing.T) {
	p := NewSalaryParser("AUD")

	for _, input := range []string{"Competitive salary", "Negotiable", "Attractive package", ""} {
		s := p.Parse(input)
		assert.Nil(t, s.Min, input)
		assert.Nil(t, s.Max, input)
		assert.False(t, s.HasValue(), input)
	}
}

func TestParseCurrencyDetection(t *testing.T) {
	p := NewSalaryParser("AUD")

	assert.Equal(t, "GBP", p.Parse("£55,000 per annum").Currency)
	assert.Equal(t, "EUR", p.Parse("€60,000").Currency)
	assert.Equal(t, "USD", p.Parse("120,000 USD").Currency)
	assert.Equal(t, "NZD", p.Parse("NZD 90,000").Currency)
	// Bare "$" follows the home market.
	assert.Equal(t, "AUD", p.Parse("$90,000").Currency)
}

func TestParseOrderIndependentRange(t *testing.T) {
	p := NewSalaryParser("AUD")

	s := p.Parse("$100,000 - $80,000")
	require.True(t, s.HasValue())
	assert.Equal(t, 80000.0, *s.Min)
	assert.Equal(t, 100000.0, *s.Max)
}

func TestParseLooseRejectsImplausibleNumbers(t *testing.T) {
	p := NewSalaryParser("AUD")

	// Ref 884213 looks like a job ID, not a salary... but sits inside the
	// band; the band only excludes clearly implausible magnitudes.
	s := p.ParseLoose("Call 0400 123 456 about role ref 99. Salary $85,000 on offer.")
	require.True(t, s.HasValue())
	assert.Equal(t, 85000.0, *s.Max)

	s = p.ParseLoose("Job ID 12 posted in 200 words")
	assert.False(t, s.HasValue())
}

func TestRenderRoundTrip(t *testing.T) {
	p := NewSalaryParser("AUD")

	inputs := []string{
		"$80,000 - $100,000 per year",
		"$45 per hour",
		"75-85k",
		"$120,000",
	}
	for _, input := range inputs {
		first := p.Parse(input)
		rendered := p.Render(first)
		second := p.Parse(rendered)

		require.True(t, second.HasValue(), input)
		assert.Equal(t, *first.Min, *second.Min, input)
		assert.Equal(t, *first.Max, *second.Max, input)
		assert.Equal(t, first.Period, second.Period, input)
	}
}

func TestRenderTextOnly(t *testing.T) {
	p := NewSalaryParser("AUD")

	s := p.Parse("Competitive")
	assert.Equal(t, "Competitive", p.Render(s))
	assert.Equal(t, "Salary not specified", p.Render(domain.Salary{}))
}
