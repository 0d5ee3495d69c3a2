package cleaner

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Cleaner turns raw scraped fragments (HTML or plain text) into clean text
// and can rebuild lightweight structural HTML from that text. It is pure:
// malformed input degrades to best-effort output, never an error.
type Cleaner struct {
	sanitize  *bluemonday.Policy
	strict    *bluemonday.Policy
	denylist  []string
	spaceRuns *regexp.Regexp
	blankRuns *regexp.Regexp
}

// Config holds cleaner options. ExtraBoilerplate extends the built-in
// denylist of navigation/UI phrases stripped from descriptions.
type Config struct {
	ExtraBoilerplate []string
}

// New creates a Cleaner with the default boilerplate denylist.
func New(cfg Config) *Cleaner {
	// Keep structural elements plus a small attribute allow-list; everything
	// else (scripts, styles, comments, event handlers) is dropped.
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "div", "span")
	policy.AllowElements("strong", "b", "em", "i", "u")
	policy.AllowElements("ul", "ol", "li")
	policy.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowAttrs("src", "alt", "title").OnElements("img")
	policy.AllowAttrs("class", "title").Globally()
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)
	policy.AllowURLSchemes("http", "https", "mailto")

	denylist := make([]string, 0, len(defaultBoilerplate)+len(cfg.ExtraBoilerplate))
	for _, p := range defaultBoilerplate {
		denylist = append(denylist, strings.ToLower(p))
	}
	for _, p := range cfg.ExtraBoilerplate {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			denylist = append(denylist, p)
		}
	}

	return &Cleaner{
		sanitize:  policy,
		strict:    bluemonday.StrictPolicy(),
		denylist:  denylist,
		spaceRuns: regexp.MustCompile(`[ \t]{2,}`),
		blankRuns: regexp.MustCompile(`\n{3,}`),
	}
}

// Sanitize keeps safe structural HTML and strips everything else.
func (c *Cleaner) Sanitize(fragment string) string {
	return strings.TrimSpace(c.sanitize.Sanitize(fragment))
}

// Clean converts a raw fragment to plain text: tags and entities resolved,
// boilerplate lines removed, whitespace collapsed.
func (c *Cleaner) Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := raw
	if strings.Contains(raw, "<") {
		text = c.htmlToText(raw)
	}
	text = html.UnescapeString(text)
	text = c.stripBoilerplate(text)

	text = c.spaceRuns.ReplaceAllString(text, " ")
	text = c.blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// htmlToText flattens HTML preserving list and paragraph breaks so that
// downstream section analysis has structure to work with.
func (c *Cleaner) htmlToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		// Degrade to tag stripping.
		return c.strict.Sanitize(fragment)
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n- ")
		s.AppendHtml("\n")
	})
	doc.Find("p, div, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, "\n")
}

// stripBoilerplate drops lines that are navigation/UI noise. A line is
// dropped only when a denylist phrase matches on word boundaries and the
// line is short enough to be chrome rather than a real sentence.
func (c *Cleaner) stripBoilerplate(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !c.isBoilerplate(strings.TrimSpace(line)) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

const boilerplateMaxLen = 64

func (c *Cleaner) isBoilerplate(line string) bool {
	if line == "" || len(line) > boilerplateMaxLen {
		return false
	}
	lower := strings.ToLower(line)
	for _, phrase := range c.denylist {
		if containsPhrase(lower, phrase) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in s on word boundaries, so
// "apply" never matches inside "applying".
func containsPhrase(s, phrase string) bool {
	for start := 0; ; {
		idx := strings.Index(s[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		beforeOK := idx == 0 || !isWordByte(s[idx-1])
		afterOK := end == len(s) || !isWordByte(s[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

var (
	bulletLine  = regexp.MustCompile(`^\s*[•\-\*]\s+`)
	orderedLine = regexp.MustCompile(`^\s*\d+[\.\)]\s+`)
	upperWord   = regexp.MustCompile(`^[A-Z][A-Z0-9 &/\-:]{2,59}$`)
)

// MinimalHTML rebuilds lightweight structure from plain text: blank-line
// delimited paragraphs, bullet and numbered lists, short all-uppercase
// lines as headings. The rebuild is lossy; only coarse structure survives.
func (c *Cleaner) MinimalHTML(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	for _, block := range splitBlocks(text) {
		switch {
		case allMatch(block, bulletLine):
			b.WriteString("<ul>")
			for _, line := range block {
				b.WriteString("<li>")
				b.WriteString(html.EscapeString(bulletLine.ReplaceAllString(line, "")))
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		case allMatch(block, orderedLine):
			b.WriteString("<ol>")
			for _, line := range block {
				b.WriteString("<li>")
				b.WriteString(html.EscapeString(orderedLine.ReplaceAllString(line, "")))
				b.WriteString("</li>")
			}
			b.WriteString("</ol>")
		case len(block) == 1 && upperWord.MatchString(block[0]):
			b.WriteString("<h3>")
			b.WriteString(html.EscapeString(block[0]))
			b.WriteString("</h3>")
		default:
			b.WriteString("<p>")
			b.WriteString(html.EscapeString(strings.Join(block, " ")))
			b.WriteString("</p>")
		}
	}
	return b.String()
}

// splitBlocks groups consecutive non-blank lines.
func splitBlocks(text string) [][]string {
	var blocks [][]string
	var cur []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, strings.TrimSpace(line))
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func allMatch(lines []string, re *regexp.Regexp) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !re.MatchString(line) {
			return false
		}
	}
	return true
}

// defaultBoilerplate is the built-in denylist of recurring UI/navigation
// phrases seen across the job boards we scrape.
var defaultBoilerplate = []string{
	"apply now",
	"apply for this job",
	"quick apply",
	"save job",
	"save this job",
	"saved jobs",
	"copy link",
	"share this job",
	"report this job",
	"privacy policy",
	"terms and conditions",
	"terms of use",
	"cookie policy",
	"we use cookies",
	"accept all cookies",
	"manage cookies",
	"sign in",
	"sign up",
	"create alert",
	"job alert",
	"back to search results",
	"view all jobs",
	"similar jobs",
	"skip to content",
	"skip to main content",
}
