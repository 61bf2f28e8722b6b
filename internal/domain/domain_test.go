package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validMetadata() *ScrapedMetadata {
	content := BilingualContent{Original: "x", Secondary: strPtr("x")}
	return &ScrapedMetadata{
		Title:       BilingualContent{Original: "Example", Secondary: strPtr("Example")},
		Description: BilingualContent{},
		URL:         "https://example.com/",
		Domain:      "example.com",
		Name:        "Example",
		Tags:        []string{"ai-tool"},
		Categories:  []string{"AI Tools"},
		GeneratedContent: &GeneratedContent{
			Summary:   content,
			Article:   content,
			KeyPoints: []BilingualContent{content},
			Pros:      []BilingualContent{content},
			Cons:      []BilingualContent{content},
		},
	}
}

func TestDeriveDomainAndName(t *testing.T) {
	u, err := url.Parse("https://www.Example.com/page")
	require.NoError(t, err)

	domain := DeriveDomain(u)
	assert.Equal(t, "example.com", domain)
	assert.Equal(t, "Example", DeriveName(domain))

	u, err = url.Parse("http://chat.openai.com:8443/x")
	require.NoError(t, err)
	assert.Equal(t, "chat.openai.com", DeriveDomain(u))
	assert.Equal(t, "Chat", DeriveName("chat.openai.com"))

	assert.Equal(t, "", DeriveName(""))
}

func TestScrapedMetadata_Validate(t *testing.T) {
	t.Run("valid record passes", func(t *testing.T) {
		assert.NoError(t, validMetadata().Validate())
	})

	t.Run("relative url fails", func(t *testing.T) {
		m := validMetadata()
		m.URL = "/just/a/path"
		err := m.Validate()
		require.Error(t, err)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "url", verr.Fields[0].Field)
	})

	t.Run("empty classification fails", func(t *testing.T) {
		m := validMetadata()
		m.Tags = nil
		m.Categories = []string{}
		err := m.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tags: must not be empty")
		assert.Contains(t, err.Error(), "categories: must not be empty")
	})

	t.Run("missing generated content fails", func(t *testing.T) {
		m := validMetadata()
		m.GeneratedContent = nil
		assert.ErrorContains(t, m.Validate(), "generatedContent")
	})

	t.Run("untranslated text fails", func(t *testing.T) {
		m := validMetadata()
		m.OGTitle = &BilingualContent{Original: "no translation"}
		assert.ErrorContains(t, m.Validate(), "ogTitle: missing secondary translation")
	})

	t.Run("unknown pricing model fails", func(t *testing.T) {
		m := validMetadata()
		m.Pricing = &PricingInfo{PricingModel: "weekly"}
		assert.ErrorContains(t, m.Validate(), "pricing.pricingModel")
	})
}

func TestNewProduct(t *testing.T) {
	m := validMetadata()
	m.Tags = []string{"chatbot", "ai-tool"}
	m.OGDescription = &BilingualContent{Original: "OG description", Secondary: strPtr("OG description")}
	m.Favicon = "https://example.com/favicon.ico"

	p := NewProduct(m, 42)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "https://example.com/", p.URL)
	assert.Equal(t, "Example", p.Codename)
	assert.Equal(t, "Example", p.Punchline)
	assert.Equal(t, "OG description", p.Description)
	assert.Equal(t, "https://example.com/favicon.ico", p.LogoURL)
	assert.Equal(t, []string{"ai-tool", "scraped", "chatbot"}, p.Tags)
	assert.Equal(t, []string{"unlabeled"}, p.Labels)
	assert.Equal(t, []string{"AI Tools"}, p.Categories)
	assert.Equal(t, int64(42), p.SubmittedBy)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewProduct_Fallbacks(t *testing.T) {
	m := validMetadata()
	m.Title = BilingualContent{}

	p := NewProduct(m, 0)
	assert.Equal(t, "Example", p.Punchline)
	assert.Equal(t, "AI tool scraped from https://example.com/", p.Description)
}
