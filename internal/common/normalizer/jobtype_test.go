package normalizer

import (
	"testing"

	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTypePriority(t *testing.T) {
	c := NewJobTypeClassifier()

	// Casual outranks full-time in the fixed priority order.
	assert.Equal(t, domain.TypeCasual, c.ClassifyType("Full-time casual position"))
	assert.Equal(t, domain.TypePartTime, c.ClassifyType("Permanent part-time"))
	assert.Equal(t, domain.TypeContract, c.ClassifyType("12 month fixed-term contract"))
}

func TestClassifyTypeKeywords(t *testing.T) {
	c := NewJobTypeClassifier()

	cases := map[string]domain.JobType{
		"Casual retail assistant":  domain.TypeCasual,
		"Part time cleaner":        domain.TypePartTime,
		"Contractor wanted":        domain.TypeContract,
		"Temp cover for 3 months":  domain.TypeTemporary,
		"Graduate program 2025":    domain.TypeInternship,
		"Freelance designer":       domain.TypeFreelance,
		"Permanent role":           domain.TypeFullTime,
		"Senior Software Engineer": domain.TypeFullTime, // default
		"":                         domain.TypeFullTime, // default
	}
	for input, want := range cases {
		assert.Equal(t, want, c.ClassifyType(input), input)
	}
}

func TestClassifyTypeWholeWords(t *testing.T) {
	c := NewJobTypeClassifier()

	// "temp" must not fire inside "template" or "attempt".
	assert.Equal(t, domain.TypeFullTime, c.ClassifyType("Maintain our template library"))
	assert.Equal(t, domain.TypeFullTime, c.ClassifyType("attempt challenging problems"))
}

func TestClassifyWorkMode(t *testing.T) {
	c := NewJobTypeClassifier()

	cases := map[string]domain.WorkMode{
		"Fully remote team":          domain.ModeRemote,
		"Work from home available":   domain.ModeRemote,
		"WFH Fridays":                domain.ModeRemote,
		"Hybrid working arrangement": domain.ModeHybrid,
		"On-site at our warehouse":   domain.ModeOnSite,
		"Office-based role":          domain.ModeOnSite,
		"Competitive salary":         domain.ModeUnspecified,
		"":                           domain.ModeUnspecified,
	}
	for input, want := range cases {
		assert.Equal(t, want, c.ClassifyWorkMode(input), input)
	}
}

func TestClassifyWorkModeHybridBeatsRemote(t *testing.T) {
	c := NewJobTypeClassifier()

	got := c.ClassifyWorkMode("Hybrid role with 2 remote days per week")
	assert.Equal(t, domain.ModeHybrid, got)
}
