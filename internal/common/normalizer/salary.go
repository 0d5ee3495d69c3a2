package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// SalaryParser extracts {min, max, currency, period} from free-text salary
// strings like "$80,000 - $100,000 per year" or "75-85k + super". It is
// total: text without a recoverable number yields nil min/max, never an
// error.
type SalaryParser struct {
	defaultCurrency string
}

// NewSalaryParser creates a parser that assumes defaultCurrency when the
// "$" symbol is ambiguous for the scraper's home market.
func NewSalaryParser(defaultCurrency string) *SalaryParser {
	if defaultCurrency == "" {
		defaultCurrency = "AUD"
	}
	return &SalaryParser{defaultCurrency: defaultCurrency}
}

var (
	digitRe       = regexp.MustCompile(`\d`)
	salaryTokenRe = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*([kK])?`)
)

// Plausibility band applied only when scanning unstructured fallback text,
// so job IDs and years are not mistaken for salaries.
const (
	plausibleMin = 1_000
	plausibleMax = 1_000_000
)

// Parse handles an explicitly-labeled salary field. No plausibility band
// is applied: a labeled "$45/hr" keeps 45.
func (p *SalaryParser) Parse(text string) domain.Salary {
	return p.parse(text, false)
}

// ParseLoose scans unstructured text for a salary, rejecting numbers
// outside the plausibility band.
func (p *SalaryParser) ParseLoose(text string) domain.Salary {
	return p.parse(text, true)
}

func (p *SalaryParser) parse(text string, banded bool) domain.Salary {
	s := domain.Salary{
		Currency: p.detectCurrency(text),
		Period:   detectPeriod(text),
		RawText:  strings.TrimSpace(text),
	}

	// "Competitive", "Negotiable" and friends carry no digits and stay
	// numeric-free rather than being coerced to zero.
	if !digitRe.MatchString(text) {
		return s
	}

	values := extractAmounts(text, banded)
	switch len(values) {
	case 0:
	case 1:
		s.Min, s.Max = &values[0], &values[0]
	default:
		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		s.Min, s.Max = &lo, &hi
	}
	return s
}

// extractAmounts finds numeric tokens, applying the "k" multiplier. When a
// range mixes suffixed and bare tokens ("75-85k") the multiplier carries
// over to bare tokens under 1000.
func extractAmounts(text string, banded bool) []float64 {
	matches := salaryTokenRe.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}

	anyK := false
	type token struct {
		value float64
		hasK  bool
	}
	tokens := make([]token, 0, len(matches))
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		hasK := m[2] != ""
		if hasK {
			v *= 1000
			anyK = true
		}
		tokens = append(tokens, token{value: v, hasK: hasK})
	}

	var values []float64
	for _, t := range tokens {
		v := t.value
		if anyK && !t.hasK && v < 1000 {
			v *= 1000
		}
		if banded && (v < plausibleMin || v > plausibleMax) {
			continue
		}
		values = append(values, v)
	}
	return values
}

func (p *SalaryParser) detectCurrency(text string) string {
	upper := strings.ToUpper(text)
	for _, code := range []string{"AUD", "NZD", "GBP", "USD", "EUR"} {
		if containsWord(upper, code) {
			return code
		}
	}
	switch {
	case strings.Contains(text, "£"):
		return "GBP"
	case strings.Contains(text, "€"):
		return "EUR"
	case strings.Contains(upper, "US$"):
		return "USD"
	}
	// "$" alone is ambiguous; assume the home market.
	return p.defaultCurrency
}

// detectPeriod checks keywords in fixed priority order; yearly is the
// default for salaried roles.
var periodRules = []struct {
	keywords []string
	period   domain.Period
}{
	{[]string{"hour", "hourly", "hr", "p.h", "ph"}, domain.PeriodHourly},
	{[]string{"day", "daily", "p.d"}, domain.PeriodDaily},
	{[]string{"week", "weekly", "p.w"}, domain.PeriodWeekly},
	{[]string{"month", "monthly", "p.m"}, domain.PeriodMonthly},
}

func detectPeriod(text string) domain.Period {
	lower := strings.ToLower(text)
	for _, rule := range periodRules {
		for _, kw := range rule.keywords {
			if containsWord(lower, kw) {
				return rule.period
			}
		}
	}
	return domain.PeriodYearly
}

// Render formats a salary the way boards display it, such that re-parsing
// the output recovers the same {min, max, period}.
func (p *SalaryParser) Render(s domain.Salary) string {
	if !s.HasValue() {
		if s.RawText != "" {
			return s.RawText
		}
		return "Salary not specified"
	}

	symbol := currencySymbol(s.Currency)
	per := periodNoun(s.Period)
	if *s.Min == *s.Max {
		return fmt.Sprintf("%s%s per %s", symbol, formatAmount(*s.Min), per)
	}
	return fmt.Sprintf("%s%s - %s%s per %s",
		symbol, formatAmount(*s.Min), symbol, formatAmount(*s.Max), per)
}

func currencySymbol(code string) string {
	switch code {
	case "GBP":
		return "£"
	case "EUR":
		return "€"
	default:
		return "$"
	}
}

func periodNoun(p domain.Period) string {
	switch p {
	case domain.PeriodHourly:
		return "hour"
	case domain.PeriodDaily:
		return "day"
	case domain.PeriodWeekly:
		return "week"
	case domain.PeriodMonthly:
		return "month"
	default:
		return "year"
	}
}

// formatAmount renders 80000 as "80,000"; fractional cents are kept only
// when present.
func formatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v)
	frac := v - float64(whole)

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String()
	if frac > 0.004 {
		out += strings.TrimPrefix(strconv.FormatFloat(frac, 'f', 2, 64), "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}

// containsWord reports a whole-token, boundary-aware match.
func containsWord(s, word string) bool {
	return indexWord(s, word) >= 0
}

// indexWord returns the position of the first boundary-aware occurrence of
// word in s, or -1.
func indexWord(s, word string) int {
	for start := 0; ; {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return -1
		}
		idx += start
		end := idx + len(word)
		beforeOK := idx == 0 || !isWordChar(s[idx-1])
		afterOK := end == len(s) || !isWordChar(s[end])
		if beforeOK && afterOK {
			return idx
		}
		start = idx + 1
	}
}
