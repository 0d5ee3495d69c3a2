package normalizer

import (
	"regexp"
	"sort"
	"strings"
)

// SkillsConfig controls vocabulary matching and output shaping. Zero
// values fall back to the curated defaults.
type SkillsConfig struct {
	Vocabulary        []string
	TitleSkills       map[string][]string
	Defaults          []string
	DefaultsPreferred []string

	// MaxRequired/MaxPreferred cap set sizes; overflow from required is
	// rebalanced into preferred before truncation.
	MaxRequired  int
	MaxPreferred int

	// CharBudget bounds the serialized (comma-joined) length of each set.
	CharBudget int

	// Fallback enables inventing skills from the title map and generic
	// defaults when extraction finds nothing. Off by default because it
	// masks extraction misses as successes.
	Fallback bool
}

// SkillsResult carries the partitioned skill sets. Required and Preferred
// never overlap; both preserve first-seen document order.
type SkillsResult struct {
	Required  []string
	Preferred []string
	Truncated bool
}

// SkillsExtractor scans description text against a curated vocabulary and
// splits matches into required vs preferred using section-level indicator
// phrases.
type SkillsExtractor struct {
	cfg       SkillsConfig
	vocab     []vocabEntry
	titles    map[string][]string
	titleKeys []string
	tagRe     *regexp.Regexp
	splitRe   *regexp.Regexp
}

type vocabEntry struct {
	display string
	lower   string
	words   []string
}

// NewSkillsExtractor builds an extractor; nil/zero config fields use the
// package defaults.
func NewSkillsExtractor(cfg SkillsConfig) *SkillsExtractor {
	if len(cfg.Vocabulary) == 0 {
		cfg.Vocabulary = DefaultSkillVocabulary
	}
	if cfg.TitleSkills == nil {
		cfg.TitleSkills = TitleSkills
	}
	if len(cfg.Defaults) == 0 {
		cfg.Defaults = DefaultSkills
	}
	if len(cfg.DefaultsPreferred) == 0 {
		cfg.DefaultsPreferred = DefaultPreferredSkills
	}
	if cfg.MaxRequired <= 0 {
		cfg.MaxRequired = 12
	}
	if cfg.MaxPreferred <= 0 {
		cfg.MaxPreferred = 10
	}
	if cfg.CharBudget <= 0 {
		cfg.CharBudget = 200
	}

	vocab := make([]vocabEntry, 0, len(cfg.Vocabulary))
	for _, skill := range cfg.Vocabulary {
		lower := strings.ToLower(skill)
		vocab = append(vocab, vocabEntry{
			display: skill,
			lower:   lower,
			words:   strings.Fields(lower),
		})
	}

	titles := make(map[string][]string, len(cfg.TitleSkills))
	titleKeys := make([]string, 0, len(cfg.TitleSkills))
	for k, v := range cfg.TitleSkills {
		lower := strings.ToLower(k)
		titles[lower] = v
		titleKeys = append(titleKeys, lower)
	}
	sort.Strings(titleKeys)

	return &SkillsExtractor{
		cfg:       cfg,
		vocab:     vocab,
		titles:    titles,
		titleKeys: titleKeys,
		tagRe:     regexp.MustCompile(`<[^>]+>`),
		splitRe:   regexp.MustCompile(`\n\s*\n`),
	}
}

// Extract partitions the skills found in description (with title-based
// fallback when enabled). Total over all inputs: worst case both sets are
// empty.
func (e *SkillsExtractor) Extract(description, title string) SkillsResult {
	text := description
	if strings.Contains(text, "<") {
		text = e.tagRe.ReplaceAllString(text, " ")
	}

	var requiredOrder, preferredOrder []string
	seen := make(map[string]string) // lower skill -> "required" | "preferred"

	for _, section := range e.splitRe.Split(text, -1) {
		lower := strings.ToLower(section)
		preferredCtx := containsAnyPhrase(lower, preferredIndicators)
		requiredCtx := containsAnyPhrase(lower, requiredIndicators)

		// No clear signal, or both signals, reads as required context.
		class := "required"
		if preferredCtx && !requiredCtx {
			class = "preferred"
		}

		// Collect matches with their section position so output order
		// follows the document, not the vocabulary.
		type match struct {
			entry vocabEntry
			pos   int
		}
		var matches []match
		for _, entry := range e.vocab {
			if pos := skillPosition(lower, entry); pos >= 0 {
				matches = append(matches, match{entry: entry, pos: pos})
			}
		}
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

		for _, m := range matches {
			entry := m.entry
			prev, ok := seen[entry.lower]
			if !ok {
				seen[entry.lower] = class
				if class == "preferred" {
					preferredOrder = append(preferredOrder, entry.display)
				} else {
					requiredOrder = append(requiredOrder, entry.display)
				}
				continue
			}
			// An explicit preferred signal overrides a required match
			// found elsewhere in the document.
			if prev == "required" && class == "preferred" {
				seen[entry.lower] = "preferred"
				requiredOrder = removeString(requiredOrder, entry.display)
				preferredOrder = append(preferredOrder, entry.display)
			}
		}
	}

	requiredOrder, preferredOrder = e.rebalance(requiredOrder, preferredOrder)

	if e.cfg.Fallback {
		if len(requiredOrder) == 0 {
			requiredOrder = e.fromTitle(title, nil)
			if len(requiredOrder) == 0 {
				requiredOrder = append(requiredOrder, e.cfg.Defaults...)
			}
		}
		if len(preferredOrder) == 0 {
			preferredOrder = e.fromTitle(title, requiredOrder)
			if len(preferredOrder) == 0 {
				preferredOrder = excludeAll(e.cfg.DefaultsPreferred, requiredOrder)
			}
		}
	}

	res := SkillsResult{}
	res.Required, res.Truncated = capBudget(requiredOrder, e.cfg.CharBudget)
	var truncated bool
	res.Preferred, truncated = capBudget(preferredOrder, e.cfg.CharBudget)
	res.Truncated = res.Truncated || truncated
	return res
}

// skillPosition tries an exact phrase match first; multi-word skills fall
// back to all constituent words being present in the section. Returns the
// match position, or -1.
func skillPosition(sectionLower string, entry vocabEntry) int {
	if pos := indexWord(sectionLower, entry.lower); pos >= 0 {
		return pos
	}
	if len(entry.words) < 2 {
		return -1
	}
	first := -1
	for _, w := range entry.words {
		pos := indexWord(sectionLower, w)
		if pos < 0 {
			return -1
		}
		if first < 0 || pos < first {
			first = pos
		}
	}
	return first
}

// rebalance moves overflow beyond MaxRequired into preferred, longest
// (most specialized) phrases first, then applies both size caps.
func (e *SkillsExtractor) rebalance(required, preferred []string) ([]string, []string) {
	if over := len(required) - e.cfg.MaxRequired; over > 0 {
		moved := pickLongest(required, over)
		required = excludeAll(required, moved)
		for _, m := range moved {
			if len(preferred) >= e.cfg.MaxPreferred {
				break
			}
			preferred = append(preferred, m)
		}
	}
	if len(required) > e.cfg.MaxRequired {
		required = required[:e.cfg.MaxRequired]
	}
	if len(preferred) > e.cfg.MaxPreferred {
		preferred = preferred[:e.cfg.MaxPreferred]
	}
	return required, preferred
}

// fromTitle maps title keywords to skills, skipping any already taken.
func (e *SkillsExtractor) fromTitle(title string, taken []string) []string {
	lower := strings.ToLower(title)
	var out []string
	for _, keyword := range e.titleKeys {
		if !containsWord(lower, keyword) {
			continue
		}
		for _, s := range excludeAll(e.titles[keyword], taken) {
			if !containsString(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

// capBudget truncates at whole-skill boundaries so the comma-joined form
// fits the budget; it never cuts mid-skill.
func capBudget(skills []string, budget int) ([]string, bool) {
	total := 0
	for i, s := range skills {
		add := len(s)
		if i > 0 {
			add += 2 // ", "
		}
		if total+add > budget {
			return skills[:i], true
		}
		total += add
	}
	return skills, false
}

func containsAnyPhrase(s string, phrases []string) bool {
	for _, p := range phrases {
		if containsWord(s, p) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, item := range list {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}

func excludeAll(list, exclude []string) []string {
	var out []string
	for _, item := range list {
		if !containsString(exclude, item) {
			out = append(out, item)
		}
	}
	return out
}

// pickLongest returns the n longest entries preserving their original
// relative order.
func pickLongest(list []string, n int) []string {
	if n >= len(list) {
		return append([]string(nil), list...)
	}
	// Find the length threshold by counting.
	sorted := append([]string(nil), list...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if len(sorted[j]) > len(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	chosen := make(map[string]bool, n)
	for _, s := range sorted[:n] {
		chosen[s] = true
	}
	var out []string
	for _, s := range list {
		if chosen[s] && len(out) < n {
			out = append(out, s)
		}
	}
	return out
}
