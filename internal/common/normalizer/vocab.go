package normalizer

// AustralianStates maps state/territory codes to full names. This is the
// default abbreviation table; callers may supply their own.
var AustralianStates = map[string]string{
	"NSW": "New South Wales",
	"VIC": "Victoria",
	"QLD": "Queensland",
	"WA":  "Western Australia",
	"SA":  "South Australia",
	"TAS": "Tasmania",
	"ACT": "Australian Capital Territory",
	"NT":  "Northern Territory",
}

// CountryNames are the country names recognized inside location strings.
// Longer names come first so compound names win over their substrings.
var CountryNames = []string{
	"United Kingdom",
	"United States",
	"New Zealand",
	"Australia",
	"Canada",
	"Ireland",
	"Singapore",
	"India",
	"Philippines",
}

// DefaultSkillVocabulary is the curated skill list matched against job
// descriptions. Multi-word phrases are matched as phrases first, then by
// all-words-present as a fallback.
var DefaultSkillVocabulary = []string{
	// Technical
	"Python", "Java", "JavaScript", "TypeScript", "Golang", "C#", "C++", "PHP", "Ruby",
	"SQL", "Excel", "Power BI", "Tableau", "SharePoint", "SAP", "Salesforce", "GIS",
	"AWS", "Azure", "Docker", "Kubernetes", "Linux", "Git", "REST APIs",
	"Data Analysis", "Machine Learning", "Cyber Security",
	// Soft
	"Communication", "Teamwork", "Leadership", "Problem Solving", "Time Management",
	"Attention to Detail", "Analytical", "Presentation", "Negotiation",
	"Stakeholder Engagement", "Customer Service", "Report Writing",
	// Domain
	"Project Management", "Change Management", "Risk Management", "Incident Management",
	"Policy Development", "Legal Research", "Contract Drafting", "Compliance",
	"Litigation", "Governance", "Procurement", "Budgeting", "Forecasting",
	"Recruitment", "Payroll", "Bookkeeping", "Accounts Payable",
	"Work Health and Safety", "First Aid", "Forklift Licence", "Manual Handling",
	"Patient Care", "Aged Care", "Childcare", "Rostering",
	"Food Safety", "Barista", "Cash Handling", "Merchandising",
	"Warehouse Operations", "Inventory Management", "Fleet Management",
}

// preferredIndicators mark a document section as describing nice-to-have
// skills; requiredIndicators mark must-have sections. Preferred context is
// authoritative when both occur for the same skill.
var preferredIndicators = []string{
	"preferred",
	"nice to have",
	"nice-to-have",
	"bonus",
	"desirable",
	"advantageous",
	"would be a plus",
	"a plus",
	"not essential",
	"highly regarded",
}

var requiredIndicators = []string{
	"required",
	"must have",
	"must-have",
	"essential",
	"mandatory",
	"you will need",
	"minimum requirements",
}

// TitleSkills infers skills from the job title when description matching
// finds nothing. Keys are matched as whole words, case-insensitively.
var TitleSkills = map[string][]string{
	"developer":     {"Git", "Problem Solving", "SQL"},
	"engineer":      {"Problem Solving", "Project Management"},
	"accountant":    {"Excel", "Bookkeeping", "Accounts Payable"},
	"nurse":         {"Patient Care", "First Aid", "Rostering"},
	"teacher":       {"Communication", "Presentation", "Time Management"},
	"chef":          {"Food Safety", "Time Management"},
	"barista":       {"Barista", "Customer Service", "Cash Handling"},
	"driver":        {"Fleet Management", "Manual Handling"},
	"administrator": {"Excel", "Time Management", "Customer Service"},
	"manager":       {"Leadership", "Project Management", "Budgeting"},
	"analyst":       {"Data Analysis", "Excel", "Report Writing"},
	"lawyer":        {"Legal Research", "Litigation", "Contract Drafting"},
	"solicitor":     {"Legal Research", "Litigation", "Contract Drafting"},
	"receptionist":  {"Customer Service", "Communication"},
	"warehouse":     {"Warehouse Operations", "Forklift Licence", "Manual Handling"},
}

// DefaultSkills is the generic fallback when nothing else matched. Only
// used when the skills fallback policy is enabled. DefaultPreferredSkills
// is kept disjoint so the fallback cannot violate the partition invariant.
var (
	DefaultSkills          = []string{"Communication", "Teamwork", "Problem Solving"}
	DefaultPreferredSkills = []string{"Time Management", "Attention to Detail"}
)
