package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// referenceHour is the fixed time-of-day applied to day-granular dates so
// repeated runs on the same day resolve identically.
const referenceHour = 9

// DateResolver converts posting-date text, relative ("3 days ago") or
// absolute ("12/03/2024"), into a timestamp. Unresolvable input returns
// now unchanged; it never fails and never returns a zero time.
type DateResolver struct{}

func NewDateResolver() *DateResolver {
	return &DateResolver{}
}

var relativeRe = regexp.MustCompile(`(\d+)\s*(hour|day|week|month)s?\s*ago`)

// absoluteFormats are tried in order against trimmed input.
var absoluteFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
}

// Resolve parses text against the supplied now.
func (r *DateResolver) Resolve(text string, now time.Time) time.Time {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return now
	}

	if strings.Contains(s, "today") || strings.Contains(s, "just posted") {
		return atReferenceHour(now)
	}
	if strings.Contains(s, "yesterday") {
		return atReferenceHour(now.AddDate(0, 0, -1))
	}

	if m := relativeRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch m[2] {
			case "hour":
				return now.Add(-time.Duration(n) * time.Hour)
			case "day":
				return now.AddDate(0, 0, -n)
			case "week":
				return now.AddDate(0, 0, -7*n)
			case "month":
				// Approximate: 30-day months, not calendar-accurate.
				return now.AddDate(0, 0, -30*n)
			}
		}
	}

	trimmed := strings.TrimSpace(text)
	for _, format := range absoluteFormats {
		if t, err := time.Parse(format, trimmed); err == nil {
			return t
		}
	}

	return now
}

func atReferenceHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), referenceHour, 0, 0, 0, t.Location())
}
