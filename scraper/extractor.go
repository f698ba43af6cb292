package scraper

import (
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"pricetrail/models"
)

// UnknownProduct is the sentinel name used when every title strategy
// fails. A missing title is non-fatal; a missing price is.
const UnknownProduct = "Unknown Product"

// selectorStrategy is one step of an ordered fallback cascade. New site
// layouts are supported by appending here, not by touching Extract.
type selectorStrategy struct {
	name     string
	selector string
}

var titleSelectors = []selectorStrategy{
	{"amazon-product-title", "span#productTitle"},
	{"amazon-title-span", "h1#title span"},
	{"flipkart-title", "span.B_NuCI"},
	{"flipkart-title-new", "span.VU-ZEz"},
	{"generic-product-title", "h1.product-title"},
}

// priceSelectors are the current structural candidates known to hold
// price text. All matches on the page are collected; the first that
// parses to a positive value wins.
var priceSelectors = []selectorStrategy{
	{"amazon-price-whole", "span.a-price-whole"},
	{"amazon-offscreen", "span.a-offscreen"},
	{"amazon-ourprice", "#priceblock_ourprice"},
	{"amazon-dealprice", "#priceblock_dealprice"},
	{"flipkart-price", "div._30jeq3"},
	{"flipkart-price-new", "div.Nx9bqj"},
	{"generic-product-price", ".product-price"},
	{"generic-price", ".price"},
}

// legacyPriceSelectors cover older id-based layouts still seen on
// cached or regional pages.
var legacyPriceSelectors = []selectorStrategy{
	{"amazon-saleprice", "#priceblock_saleprice"},
	{"amazon-buybox", "#price_inside_buybox"},
	{"amazon-new-buybox", "#newBuyBoxPrice"},
	{"amazon-core-price", "#corePrice_feature_div span.a-offscreen"},
}

type textPattern struct {
	name string
	re   *regexp.Regexp
}

// freeTextPatterns are the last-resort tier, run against the full
// visible text of the page.
var freeTextPatterns = []textPattern{
	{"rupee-symbol", regexp.MustCompile(`₹\s*([\d,]+(?:\.\d{1,2})?)`)},
	{"rs-prefix", regexp.MustCompile(`(?i)\bRs\.?\s*([\d,]+(?:\.\d{1,2})?)`)},
	{"inr-prefix", regexp.MustCompile(`(?i)\bINR\s*([\d,]+(?:\.\d{1,2})?)`)},
	{"labeled-price", regexp.MustCompile(`(?i)\b(?:Deal Price|Price|MRP)\s*:?\s*(?:₹|Rs\.?|INR)?\s*([\d,]+(?:\.\d{1,2})?)`)},
}

// Extractor pulls a product name and price out of a parsed page. It is
// a pure function of its input: no I/O, no state between calls.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract applies the title and price cascades to doc. A failed title
// leaves the sentinel name and extraction continues; an exhausted price
// cascade returns ErrPriceNotFound and nothing may be persisted.
func (e *Extractor) Extract(doc *goquery.Document, url string) (*models.ProductInfo, error) {
	info := &models.ProductInfo{
		Name: e.extractTitle(doc),
	}

	price, matchedBy, found := e.extractPrice(doc)
	if !found {
		log.Printf("Price extraction exhausted all tiers for %s", url)
		return nil, ErrPriceNotFound
	}

	info.Price = price
	info.MatchedBy = matchedBy
	return info, nil
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	for _, s := range titleSelectors {
		if text := strings.TrimSpace(doc.Find(s.selector).First().Text()); text != "" {
			return text
		}
	}

	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if text := strings.TrimSpace(content); text != "" {
			return text
		}
	}

	if text := strings.TrimSpace(doc.Find("h1, h2").First().Text()); text != "" {
		return text
	}

	return UnknownProduct
}

// extractPrice runs the three escalating tiers: structural, legacy
// structural, then free-text regex. Each tier runs only if the prior
// one yielded nothing.
func (e *Extractor) extractPrice(doc *goquery.Document) (decimal.Decimal, string, bool) {
	if price, name, ok := e.scanSelectors(doc, priceSelectors); ok {
		return price, name, true
	}

	if price, name, ok := e.scanSelectors(doc, legacyPriceSelectors); ok {
		return price, name, true
	}

	return e.scanFreeText(doc)
}

func (e *Extractor) scanSelectors(doc *goquery.Document, strategies []selectorStrategy) (decimal.Decimal, string, bool) {
	for _, s := range strategies {
		var texts []string
		doc.Find(s.selector).Each(func(_ int, sel *goquery.Selection) {
			texts = append(texts, sel.Text())
		})

		// First successfully parsed positive value wins; duplicates
		// on the page are never averaged or voted on.
		for _, text := range texts {
			price, err := CleanPrice(text)
			if err != nil {
				continue
			}
			if price.IsPositive() {
				log.Printf("Price matched by selector %q: %s", s.name, price)
				return price, s.name, true
			}
		}
	}
	return decimal.Zero, "", false
}

func (e *Extractor) scanFreeText(doc *goquery.Document) (decimal.Decimal, string, bool) {
	pageText := doc.Find("body").Text()
	if pageText == "" {
		pageText = doc.Text()
	}

	for _, p := range freeTextPatterns {
		matches := p.re.FindAllStringSubmatch(pageText, -1)
		for _, match := range matches {
			price, err := CleanPrice(match[1])
			if err != nil {
				continue
			}
			if price.IsPositive() {
				log.Printf("Price matched by pattern %q: %s", p.name, price)
				return price, p.name, true
			}
		}
	}

	return decimal.Zero, "", false
}
