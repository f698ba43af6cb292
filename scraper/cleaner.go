package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Sanity bounds for a plausible product price. Anything outside is
// treated as a non-match, not an error.
var (
	minSanePrice = decimal.NewFromInt(1)
	maxSanePrice = decimal.NewFromInt(100_000_000)
)

// currencyWords are stripped before numeric parsing, longest first so
// "MRP" goes before a bare "Rs".
var currencyWords = []string{
	"Deal Price", "deal price", "Price", "price", "MRP", "mrp",
	"INR", "inr", "Rs.", "rs.", "Rs", "rs", "₹", ":",
}

var numberPattern = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// CleanPrice turns noisy price text ("₹1,299.00", "MRP: Rs. 4,999")
// into a decimal value. It returns an error when no parseable number
// survives cleaning or the value falls outside the sanity bounds.
func CleanPrice(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	for _, word := range currencyWords {
		cleaned = strings.ReplaceAll(cleaned, word, " ")
	}

	match := numberPattern.FindString(cleaned)
	if match == "" {
		return decimal.Zero, fmt.Errorf("no numeric value in %q", text)
	}

	// Commas are thousands separators in the formats we scrape.
	match = strings.ReplaceAll(match, ",", "")

	price, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse price %q: %v", match, err)
	}

	if price.LessThan(minSanePrice) || price.GreaterThan(maxSanePrice) {
		return decimal.Zero, fmt.Errorf("price %s outside sane bounds", price)
	}

	return price, nil
}
