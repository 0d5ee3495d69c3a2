package normalizer

import (
	"strings"

	"github.com/project-tktt/go-ausjobs/internal/domain"
)

// JobTypeClassifier maps free text to the closed employment-type and
// work-mode sets. Both classifiers are ordered rule tables evaluated in a
// fixed priority, so overlaps like "full-time casual" resolve
// deterministically (casual wins).
type JobTypeClassifier struct{}

func NewJobTypeClassifier() *JobTypeClassifier {
	return &JobTypeClassifier{}
}

// jobTypeRules are scanned in order; the first keyword hit wins.
var jobTypeRules = []struct {
	keywords []string
	result   domain.JobType
}{
	{[]string{"casual"}, domain.TypeCasual},
	{[]string{"part-time", "part time", "parttime"}, domain.TypePartTime},
	{[]string{"contract", "contractor", "fixed-term", "fixed term"}, domain.TypeContract},
	{[]string{"temporary", "temp"}, domain.TypeTemporary},
	{[]string{"internship", "intern", "trainee", "apprentice", "graduate program"}, domain.TypeInternship},
	{[]string{"freelance", "freelancer"}, domain.TypeFreelance},
	{[]string{"full-time", "full time", "fulltime", "permanent"}, domain.TypeFullTime},
}

// workModeRules give hybrid precedence over remote: postings that say
// "hybrid (2 days remote)" are hybrid.
var workModeRules = []struct {
	keywords []string
	result   domain.WorkMode
}{
	{[]string{"hybrid"}, domain.ModeHybrid},
	{[]string{"remote", "work from home", "wfh", "work-from-home"}, domain.ModeRemote},
	{[]string{"on-site", "on site", "onsite", "in-office", "in office", "office-based"}, domain.ModeOnSite},
}

// ClassifyType returns the employment type for the text, defaulting to
// full_time when nothing matches.
func (c *JobTypeClassifier) ClassifyType(text string) domain.JobType {
	lower := strings.ToLower(text)
	for _, rule := range jobTypeRules {
		for _, kw := range rule.keywords {
			if containsWord(lower, kw) {
				return rule.result
			}
		}
	}
	return domain.TypeFullTime
}

// ClassifyWorkMode returns the work mode, or unspecified when the text
// carries no signal.
func (c *JobTypeClassifier) ClassifyWorkMode(text string) domain.WorkMode {
	lower := strings.ToLower(text)
	for _, rule := range workModeRules {
		for _, kw := range rule.keywords {
			if containsWord(lower, kw) {
				return rule.result
			}
		}
	}
	return domain.ModeUnspecified
}
