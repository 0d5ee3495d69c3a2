package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCityStatePair(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	loc := r.Resolve("Parramatta, NSW")
	assert.Equal(t, "Parramatta", loc.City)
	assert.Equal(t, "New South Wales", loc.State)
	assert.Equal(t, "Australia", loc.Country)
}

func TestResolveSeparators(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	for _, input := range []string{"Geelong - VIC", "Geelong | VIC", "Geelong, VIC"} {
		loc := r.Resolve(input)
		assert.Equal(t, "Geelong", loc.City, input)
		assert.Equal(t, "Victoria", loc.State, input)
	}
}

func TestResolveCaseInsensitiveAbbreviation(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	loc := r.Resolve("Hobart, tas")
	assert.Equal(t, "Tasmania", loc.State)
}

func TestResolveWholeTokenOnly(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	// "SA" must not fire inside "USA".
	loc := r.Resolve("Remote, USA Office")
	assert.NotEqual(t, "South Australia", loc.State)
}

func TestResolveSingleTokenPeelsTrailingState(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	loc := r.Resolve("Parramatta NSW")
	assert.Equal(t, "Parramatta", loc.City)
	assert.Equal(t, "New South Wales", loc.State)

	loc = r.Resolve("Alice Springs NT")
	assert.Equal(t, "Alice Springs", loc.City)
	assert.Equal(t, "Northern Territory", loc.State)
}

func TestResolveBareStateCode(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	loc := r.Resolve("QLD")
	assert.Equal(t, "", loc.City)
	assert.Equal(t, "Queensland", loc.State)
}

func TestResolveCountryOverride(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	loc := r.Resolve("Auckland, New Zealand")
	assert.Equal(t, "Auckland", loc.City)
	assert.Equal(t, "New Zealand", loc.Country)

	loc = r.Resolve("London, United Kingdom")
	assert.Equal(t, "London", loc.City)
	assert.Equal(t, "United Kingdom", loc.Country)
}

func TestResolveFullStateNameKept(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	loc := r.Resolve("Bendigo, victoria")
	assert.Equal(t, "Victoria", loc.State)
}

func TestResolveEmptyInput(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	for _, input := range []string{"", "   ", "\t\n"} {
		loc := r.Resolve(input)
		assert.Equal(t, "", loc.City)
		assert.Equal(t, "", loc.State)
		assert.Equal(t, "Australia", loc.Country)
	}
}

func TestResolveCityOnly(t *testing.T) {
	r := NewLocationResolver("Australia", nil)

	loc := r.Resolve("Sydney")
	assert.Equal(t, "Sydney", loc.City)
	assert.Equal(t, "", loc.State)
	assert.Equal(t, "Australia", loc.Country)
}

func TestResolveCustomTable(t *testing.T) {
	r := NewLocationResolver("New Zealand", map[string]string{"AKL": "Auckland Region"})

	loc := r.Resolve("Newmarket, AKL")
	assert.Equal(t, "Auckland Region", loc.State)
	assert.Equal(t, "New Zealand", loc.Country)
}
