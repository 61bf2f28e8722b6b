// Package translate produces the secondary-language side of bilingual content.
package translate

import (
	"regexp"
	"strings"

	"toolscout/internal/domain"
)

// Translator renders text in the secondary language.
// Implementations must be deterministic for a given input and return ""
// for "".
type Translator interface {
	Translate(text string) string
}

type substitution struct {
	pattern *regexp.Regexp
	replace string
}

// danishWords is applied in order; later entries see the output of earlier ones.
var danishWords = [][2]string{
	{"AI", "KI"},
	{"The", "Den"},
	{"A", "En"},
	{"An", "En"},
	{"This", "Denne"},
	{"These", "Disse"},
	{"That", "Den"},
	{"Those", "De"},
	{"is", "er"},
	{"are", "er"},
	{"was", "var"},
	{"were", "var"},
	{"will", "vil"},
	{"can", "kan"},
	{"could", "kunne"},
	{"should", "burde"},
	{"would", "ville"},
	{"may", "må"},
	{"might", "kunne"},
	{"must", "skal"},
	{"has", "har"},
	{"have", "har"},
	{"had", "havde"},
}

var danishLetters = [][2]string{{"oo", "ø"}, {"aa", "å"}, {"ae", "æ"}}

// Danish is a placeholder translator: whole-word dictionary substitution
// followed by digraph replacement. It stands in for a translation API.
type Danish struct {
	subs []substitution
}

// NewDanish compiles the substitution table.
func NewDanish() *Danish {
	subs := make([]substitution, 0, len(danishWords))
	for _, w := range danishWords {
		subs = append(subs, substitution{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w[0]) + `\b`),
			replace: w[1],
		})
	}
	return &Danish{subs: subs}
}

// Translate implements Translator.
func (d *Danish) Translate(text string) string {
	if text == "" {
		return ""
	}
	out := text
	for _, s := range d.subs {
		out = s.pattern.ReplaceAllLiteralString(out, s.replace)
	}
	for _, l := range danishLetters {
		out = strings.ReplaceAll(out, l[0], l[1])
	}
	return out
}

// Wrapper turns plain strings into bilingual content.
type Wrapper struct {
	translator Translator
}

// NewWrapper returns a Wrapper backed by t. A nil t falls back to Danish.
func NewWrapper(t Translator) *Wrapper {
	if t == nil {
		t = NewDanish()
	}
	return &Wrapper{translator: t}
}

// Wrap returns {Original: text} for empty input and runs the translator otherwise.
func (w *Wrapper) Wrap(text string) domain.BilingualContent {
	if text == "" {
		return domain.BilingualContent{}
	}
	secondary := w.translator.Translate(text)
	return domain.BilingualContent{Original: text, Secondary: &secondary}
}

// WrapOptional is Wrap for fields that are omitted when empty.
func (w *Wrapper) WrapOptional(text string) *domain.BilingualContent {
	if text == "" {
		return nil
	}
	c := w.Wrap(text)
	return &c
}

// WrapAll wraps each string independently.
func (w *Wrapper) WrapAll(texts []string) []domain.BilingualContent {
	out := make([]domain.BilingualContent, 0, len(texts))
	for _, t := range texts {
		out = append(out, w.Wrap(t))
	}
	return out
}
