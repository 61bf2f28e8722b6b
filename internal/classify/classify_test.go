package classify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagger_Tags(t *testing.T) {
	tagger := NewTagger()

	tests := []struct {
		name   string
		fields Fields
		want   []string
	}{
		{
			name:   "no matches still tags paid and ai-tool",
			fields: Fields{Title: "a simple todo app"},
			want:   []string{"paid", "ai-tool"},
		},
		{
			name: "vocabulary terms in vocabulary order",
			fields: Fields{
				Title:       "ChatGPT - AI chatbot",
				Description: "LLM powered assistant",
				Keywords:    []string{"Prompt"},
			},
			want: []string{"ai", "bot", "chatbot", "gpt", "llm", "prompt", "paid", "ai-tool"},
		},
		{
			name: "existing tags first and pricing tags",
			fields: Fields{
				Title:    "Free GPT helper",
				Existing: []string{"writing", "gpt"},
				IsFree:   true,
				HasTrial: true,
			},
			want: []string{"writing", "gpt", "free", "free-trial", "ai-tool"},
		},
		{
			name:   "existing ai-tool is not duplicated",
			fields: Fields{Existing: []string{"ai-tool"}},
			want:   []string{"ai-tool", "paid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Tags(tt.fields)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, got, TagAITool)
		})
	}
}

func TestCategorizer_Categories(t *testing.T) {
	categorizer := NewCategorizer()

	tests := []struct {
		name   string
		fields Fields
		want   []string
	}{
		{
			name:   "default category when nothing matches",
			fields: Fields{Title: "a simple todo app"},
			want:   []string{"AI Tools"},
		},
		{
			name:   "empty input gets default",
			fields: Fields{},
			want:   []string{"AI Tools"},
		},
		{
			name:   "single category",
			fields: Fields{Title: "ChatGPT - AI chatbot", Description: "LLM powered assistant"},
			want:   []string{"Chatbot"},
		},
		{
			name: "several categories in table order",
			fields: Fields{
				Title:       "Copilot for SEO",
				Description: "Write blog posts faster",
				Keywords:    []string{"Marketing"},
			},
			want: []string{"Text Generation", "Code Assistant", "Marketing"},
		},
		{
			name:   "existing categories come first",
			fields: Fields{Title: "Midjourney art studio", Existing: []string{"Design Tools", "Image Generation"}},
			want:   []string{"Design Tools", "Image Generation"},
		},
		{
			name:   "existing categories plus default",
			fields: Fields{Title: "todo", Existing: []string{"Lists"}},
			want:   []string{"Lists", "AI Tools"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizer.Categories(tt.fields)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestClassifiers_ConcurrentUse(t *testing.T) {
	tagger := NewTagger()
	categorizer := NewCategorizer()
	f := Fields{Title: "Deep learning image recognition", Description: "computer vision API"}

	wantTags := tagger.Tags(f)
	wantCategories := categorizer.Categories(f)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, wantTags, tagger.Tags(f))
			assert.Equal(t, wantCategories, categorizer.Categories(f))
		}()
	}
	wg.Wait()
}
