// Package generate builds the descriptive prose attached to a scraped tool.
// The output is template-driven and deterministic.
package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"toolscout/internal/domain"
	"toolscout/internal/translate"
)

// Input is the extracted data the templates draw from.
type Input struct {
	Title       string
	Description string
	Name        string
	Domain      string
	Keywords    []string
	Pricing     domain.PricingInfo
}

const summaryExcerptLength = 100

var articleTemplate = template.Must(template.New("article").Parse(`
# {{.Title}}

{{.Description}}

## About {{.Name}}

{{.Name}} is a powerful AI tool that helps users with various tasks related to {{.KeywordList}}.
The tool is designed to be user-friendly and efficient, providing a seamless experience for both beginners and experts.

## Key Features

- Advanced AI algorithms for optimal results
- User-friendly interface
- Fast processing times
- Integration with popular platforms
- Regular updates and improvements

## Use Cases

{{.Name}} can be used in various scenarios, including but not limited to:
- Content creation and optimization
- Data analysis and visualization
- Automation of repetitive tasks
- Decision-making support

## Pricing

{{if .Pricing.Free}}This tool is available for free.{{else}}This tool offers various pricing options to suit different needs.{{end}}
{{if .Pricing.Trial}}A free trial is available for users who want to test the features before committing.{{end}}

## Conclusion

{{.Name}} is a valuable addition to any AI toolkit, offering powerful features and capabilities that can significantly enhance productivity and results.
`))

var (
	pros = []string{
		"Easy to use interface",
		"Powerful AI capabilities",
		"Regular updates",
		"Good documentation",
	}
	cons = []string{
		"May require some learning curve for advanced features",
		"Limited free tier (if applicable)",
		"Some features may be in beta",
	}
)

// Generator fills the templates and wraps each result bilingually.
type Generator struct {
	wrapper *translate.Wrapper
}

// NewGenerator returns a Generator using w for every output string.
func NewGenerator(w *translate.Wrapper) *Generator {
	if w == nil {
		w = translate.NewWrapper(nil)
	}
	return &Generator{wrapper: w}
}

// Generate produces the full GeneratedContent for in.
func (g *Generator) Generate(in Input) (*domain.GeneratedContent, error) {
	article, err := renderArticle(in)
	if err != nil {
		return nil, err
	}

	return &domain.GeneratedContent{
		Summary:   g.wrapper.Wrap(Summary(in)),
		Article:   g.wrapper.Wrap(article),
		KeyPoints: g.wrapper.WrapAll(KeyPoints(in)),
		Pros:      g.wrapper.WrapAll(pros),
		Cons:      g.wrapper.WrapAll(cons),
	}, nil
}

// Summary is the one-sentence description of the tool.
func Summary(in Input) string {
	return fmt.Sprintf("%s is an AI tool from %s that %s...", in.Title, in.Domain, excerpt(in.Description, summaryExcerptLength))
}

// KeyPoints are the four headline statements about the tool.
func KeyPoints(in Input) []string {
	focus := "AI tasks"
	if len(in.Keywords) > 0 && in.Keywords[0] != "" {
		focus = in.Keywords[0]
	}
	return []string{
		fmt.Sprintf("%s is a tool for %s.", in.Name, focus),
		"It offers a user-friendly interface for easy navigation.",
		"The tool is regularly updated with new features.",
		"It integrates with popular platforms for seamless workflow.",
	}
}

func renderArticle(in Input) (string, error) {
	data := struct {
		Input
		KeywordList string
	}{in, strings.Join(in.Keywords, ", ")}

	var buf bytes.Buffer
	if err := articleTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render article: %w", err)
	}
	return buf.String(), nil
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
