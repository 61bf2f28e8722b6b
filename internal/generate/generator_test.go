package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolscout/internal/domain"
	"toolscout/internal/translate"
)

func boolPtr(b bool) *bool { return &b }

func sampleInput() Input {
	return Input{
		Title:       "Acme Writer",
		Description: "Write blog posts with AI",
		Name:        "Acme",
		Domain:      "acme.io",
		Keywords:    []string{"writing", "seo"},
		Pricing:     domain.PricingInfo{IsFree: boolPtr(true), HasTrial: boolPtr(true)},
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Acme Writer is an AI tool from acme.io that Write blog posts with AI...", Summary(sampleInput()))

	in := sampleInput()
	in.Description = strings.Repeat("x", 150)
	assert.Equal(t, "Acme Writer is an AI tool from acme.io that "+strings.Repeat("x", 100)+"...", Summary(in))
}

func TestKeyPoints(t *testing.T) {
	points := KeyPoints(sampleInput())
	require.Len(t, points, 4)
	assert.Equal(t, "Acme is a tool for writing.", points[0])

	in := sampleInput()
	in.Keywords = nil
	assert.Equal(t, "Acme is a tool for AI tasks.", KeyPoints(in)[0])
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator(translate.NewWrapper(nil))

	content, err := g.Generate(sampleInput())
	require.NoError(t, err)

	assert.Len(t, content.KeyPoints, 4)
	assert.Len(t, content.Pros, 4)
	assert.Len(t, content.Cons, 3)

	article := content.Article.Original
	for _, heading := range []string{"# Acme Writer", "## About Acme", "## Key Features", "## Use Cases", "## Pricing", "## Conclusion"} {
		assert.Contains(t, article, heading)
	}
	assert.Contains(t, article, "related to writing, seo.")
	assert.Contains(t, article, "This tool is available for free.")
	assert.Contains(t, article, "A free trial is available")

	all := append([]domain.BilingualContent{content.Summary, content.Article}, content.KeyPoints...)
	all = append(all, content.Pros...)
	all = append(all, content.Cons...)
	for _, c := range all {
		require.NotNil(t, c.Secondary, "missing translation for %q", c.Original)
	}
	assert.Equal(t, "Easy to use interface", content.Pros[0].Original)
	assert.Equal(t, "Some features må be in beta", *content.Cons[2].Secondary)
}

func TestGenerator_Generate_PaidWithoutTrial(t *testing.T) {
	in := sampleInput()
	in.Pricing = domain.PricingInfo{}

	content, err := NewGenerator(nil).Generate(in)
	require.NoError(t, err)

	assert.Contains(t, content.Article.Original, "This tool offers various pricing options")
	assert.NotContains(t, content.Article.Original, "A free trial is available")
}

func TestGenerator_Deterministic(t *testing.T) {
	g := NewGenerator(nil)
	a, err := g.Generate(sampleInput())
	require.NoError(t, err)
	b, err := g.Generate(sampleInput())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
