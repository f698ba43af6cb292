package scraper

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
)

// catalogCodePatterns match the 10-character alphanumeric catalog item
// code embedded after known path markers.
var catalogCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/dp/([A-Za-z0-9]{10})(?:[/?]|$)`),
	regexp.MustCompile(`/gp/product/([A-Za-z0-9]{10})(?:[/?]|$)`),
	regexp.MustCompile(`/product/([A-Za-z0-9]{10})(?:[/?]|$)`),
	regexp.MustCompile(`/itm/([A-Za-z0-9]{10})(?:[/?]|$)`),
}

var knownSites = map[string]string{
	"amazon":   "AMAZON",
	"flipkart": "FLIPKART",
	"myntra":   "MYNTRA",
	"ebay":     "EBAY",
	"snapdeal": "SNAPDEAL",
}

// SiteTag derives the source-site tag from a product URL host.
func SiteTag(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "WEB"
	}
	host := strings.ToLower(u.Hostname())
	for needle, tag := range knownSites {
		if strings.Contains(host, needle) {
			return tag
		}
	}
	return "WEB"
}

// ResolveProductID derives a stable product identifier from a URL. It
// is total and deterministic: repeated scrapes of the same URL collapse
// to one product history. A recognizable catalog code yields
// "<SITE>_<CODE>"; anything else falls back to a hash of the URL.
func ResolveProductID(rawURL string) string {
	site := SiteTag(rawURL)

	for _, pattern := range catalogCodePatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return site + "_" + strings.ToUpper(m[1])
		}
	}

	sum := sha1.Sum([]byte(rawURL))
	return site + "_" + hex.EncodeToString(sum[:])[:10]
}
