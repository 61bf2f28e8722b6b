package classify

// DefaultCategory is used when no category keyword matches.
const DefaultCategory = "AI Tools"

type categoryRule struct {
	name     string
	keywords []string
}

var categoryRules = []categoryRule{
	{"Text Generation", []string{"text generation", "content creation", "writing", "copywriting", "blog", "article"}},
	{"Image Generation", []string{"image", "art", "design", "graphic", "photo", "picture", "dall-e", "midjourney", "stable diffusion"}},
	{"Code Assistant", []string{"code", "programming", "developer", "software", "github", "copilot"}},
	{"Chatbot", []string{"chat", "conversation", "assistant", "support", "customer service"}},
	{"Data Analysis", []string{"data", "analytics", "visualization", "dashboard", "insight", "statistics"}},
	{"Productivity", []string{"productivity", "workflow", "automation", "efficiency", "time-saving"}},
	{"Marketing", []string{"marketing", "seo", "advertising", "campaign", "social media"}},
	{"Education", []string{"education", "learning", "teaching", "student", "course", "tutor"}},
	{"Research", []string{"research", "academic", "paper", "study", "analysis"}},
	{"Business", []string{"business", "enterprise", "company", "corporate", "management"}},
}

// Categorizer assigns categories from the fixed category table.
type Categorizer struct {
	matcher *keywordMatcher
}

// NewCategorizer builds one automaton over every category keyword.
func NewCategorizer() *Categorizer {
	var keywords []string
	seen := make(map[string]bool)
	for _, rule := range categoryRules {
		keywords = appendUnique(keywords, seen, rule.keywords...)
	}
	return &Categorizer{matcher: newKeywordMatcher(keywords)}
}

// Categories returns existing categories followed by every category with at
// least one keyword in the text. The result is never empty.
func (c *Categorizer) Categories(f Fields) []string {
	found := c.matcher.Matches(blob(f))

	var detected []string
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if found[kw] {
				detected = append(detected, rule.name)
				break
			}
		}
	}
	if len(detected) == 0 {
		detected = append(detected, DefaultCategory)
	}

	seen := make(map[string]bool)
	var categories []string
	categories = appendUnique(categories, seen, f.Existing...)
	categories = appendUnique(categories, seen, detected...)
	return categories
}
