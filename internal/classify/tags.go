package classify

// TagAITool is attached to every classified page.
const TagAITool = "ai-tool"

const (
	tagFree      = "free"
	tagPaid      = "paid"
	tagFreeTrial = "free-trial"
)

var aiKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "ml", "deep learning",
	"nlp", "natural language processing", "computer vision", "neural network",
	"algorithm", "automation", "bot", "chatbot", "gpt", "llm", "large language model",
	"data science", "analytics", "prediction", "classification", "recognition",
	"generation", "transformer", "vector", "embedding", "prompt", "fine-tuning",
}

// Tagger assigns tags from the AI keyword vocabulary plus pricing tags.
type Tagger struct {
	matcher *keywordMatcher
}

// NewTagger builds the keyword automaton for the tag vocabulary.
func NewTagger() *Tagger {
	return &Tagger{matcher: newKeywordMatcher(aiKeywords)}
}

// Tags returns existing tags, matched vocabulary terms, a pricing tag and
// TagAITool, deduplicated in first-seen order.
func (t *Tagger) Tags(f Fields) []string {
	found := t.matcher.Matches(blob(f))

	detected := make([]string, 0, len(found)+3)
	for _, kw := range aiKeywords {
		if found[kw] {
			detected = append(detected, kw)
		}
	}
	if f.IsFree {
		detected = append(detected, tagFree)
	} else {
		detected = append(detected, tagPaid)
	}
	if f.HasTrial {
		detected = append(detected, tagFreeTrial)
	}

	seen := make(map[string]bool)
	var tags []string
	tags = appendUnique(tags, seen, f.Existing...)
	tags = appendUnique(tags, seen, detected...)
	tags = appendUnique(tags, seen, TagAITool)
	return tags
}
