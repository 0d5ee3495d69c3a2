package normalizer

import (
	"regexp"
	"strings"

	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// LocationResolver decomposes a free-text location into city, state and
// country, expanding state abbreviations from a closed table.
type LocationResolver struct {
	homeCountry string
	states      map[string]string // upper-case code -> full name
	fullNames   map[string]bool   // lower-case full name set
}

var locationSeparators = regexp.MustCompile(`\s*[,\-|]\s*`)

// NewLocationResolver builds a resolver for the given home country. A nil
// table falls back to the Australian state/territory codes.
func NewLocationResolver(homeCountry string, table map[string]string) *LocationResolver {
	if homeCountry == "" {
		homeCountry = "Australia"
	}
	if table == nil {
		table = AustralianStates
	}
	states := make(map[string]string, len(table))
	fullNames := make(map[string]bool, len(table))
	for code, name := range table {
		states[strings.ToUpper(code)] = name
		fullNames[strings.ToLower(name)] = true
	}
	return &LocationResolver{homeCountry: homeCountry, states: states, fullNames: fullNames}
}

// Resolve parses a location string. Empty input yields empty city/state
// with the home country; it never fails.
func (r *LocationResolver) Resolve(text string) domain.Location {
	loc := domain.Location{Country: r.homeCountry}

	text = strings.TrimSpace(text)
	if text == "" {
		return loc
	}

	// An explicit country name anywhere in the text overrides the default.
	remaining := text
	if country, stripped := detectCountry(text); country != "" {
		loc.Country = country
		remaining = stripped
	}

	parts := splitParts(remaining)
	switch {
	case len(parts) >= 2:
		loc.City = parts[0]
		loc.State = r.expandState(parts[1])
	case len(parts) == 1:
		loc.City, loc.State = r.peelTrailingState(parts[0])
	}
	return loc
}

func splitParts(text string) []string {
	var parts []string
	for _, p := range locationSeparators.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// expandState maps a known abbreviation to its full name. Matching is on
// whole tokens so "SA" never fires inside "USA".
func (r *LocationResolver) expandState(part string) string {
	for _, token := range strings.Fields(part) {
		if full, ok := r.states[strings.ToUpper(token)]; ok {
			return full
		}
	}
	if r.fullNames[strings.ToLower(part)] {
		return canonicalName(part)
	}
	return part
}

// peelTrailingState handles single-segment input like "Parramatta NSW":
// a trailing recognized code becomes the state, the rest stays the city.
func (r *LocationResolver) peelTrailingState(part string) (city, state string) {
	tokens := strings.Fields(part)
	if len(tokens) >= 2 {
		last := strings.ToUpper(tokens[len(tokens)-1])
		if full, ok := r.states[last]; ok {
			return strings.Join(tokens[:len(tokens)-1], " "), full
		}
	}
	if len(tokens) == 1 {
		if full, ok := r.states[strings.ToUpper(tokens[0])]; ok {
			return "", full
		}
	}
	return part, ""
}

// detectCountry finds a recognized country name in the text and returns it
// along with the text minus that name.
func detectCountry(text string) (country, stripped string) {
	lower := strings.ToLower(text)
	for _, name := range CountryNames {
		idx := strings.Index(lower, strings.ToLower(name))
		if idx < 0 {
			continue
		}
		end := idx + len(name)
		beforeOK := idx == 0 || !isWordChar(lower[idx-1])
		afterOK := end == len(lower) || !isWordChar(lower[end])
		if !beforeOK || !afterOK {
			continue
		}
		stripped = strings.TrimSpace(text[:idx] + text[end:])
		stripped = strings.Trim(stripped, ",-| ")
		return name, stripped
	}
	return "", text
}

func canonicalName(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
