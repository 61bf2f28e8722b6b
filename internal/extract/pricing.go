package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"toolscout/internal/domain"
)

var pricingSelectors = []string{
	".pricing", "#pricing", ".price", "#price",
	".plan", ".subscription", ".package", ".tier",
}

var (
	freeSignals  = []string{"free", "no cost", "$0"}
	trialSignals = []string{"trial", "try for free", "demo"}
	priceRe      = regexp.MustCompile(`\$\d+(\.\d{2})?`)
)

// ExtractPricing analyses the first pricing-like element, or the whole body
// when the page has none.
func ExtractPricing(doc *goquery.Document) domain.PricingInfo {
	for _, sel := range pricingSelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			return AnalyzePricing(el.Text())
		}
	}
	return AnalyzePricing(doc.Find("body").Text())
}

// AnalyzePricing applies the free/trial/price/model rules to text.
func AnalyzePricing(text string) domain.PricingInfo {
	text = strings.ToLower(text)

	isFree := containsAny(text, freeSignals)
	hasTrial := containsAny(text, trialSignals)
	info := domain.PricingInfo{
		IsFree:   &isFree,
		HasTrial: &hasTrial,
		Price:    priceRe.FindString(text),
	}
	for _, model := range domain.PricingModels {
		if strings.Contains(text, string(model)) {
			info.PricingModel = model
			break
		}
	}
	return info
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
