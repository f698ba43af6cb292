package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProductIDCatalogCode(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"amazon dp", "https://www.amazon.in/Aurora-Kettle/dp/B0ABCDEFGH?ref=sr_1", "AMAZON_B0ABCDEFGH"},
		{"amazon gp product", "https://www.amazon.in/gp/product/B0ABCDEFGH", "AMAZON_B0ABCDEFGH"},
		{"lowercase code uppercased", "https://www.amazon.in/dp/b0abcdefgh", "AMAZON_B0ABCDEFGH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveProductID(tt.url))
		})
	}
}

func TestResolveProductIDHashFallback(t *testing.T) {
	url := "https://www.flipkart.com/aurora-kettle/p/itmf3hyqqkzvtsna"

	id := ResolveProductID(url)
	assert.True(t, strings.HasPrefix(id, "FLIPKART_"))
	assert.Len(t, strings.TrimPrefix(id, "FLIPKART_"), 10)

	// Deterministic: repeated scrapes of one URL collapse to one history.
	assert.Equal(t, id, ResolveProductID(url))

	other := ResolveProductID(url + "?param=1")
	assert.NotEqual(t, id, other)
}

func TestSiteTag(t *testing.T) {
	assert.Equal(t, "AMAZON", SiteTag("https://www.amazon.in/dp/B0ABCDEFGH"))
	assert.Equal(t, "FLIPKART", SiteTag("https://www.flipkart.com/p/x"))
	assert.Equal(t, "WEB", SiteTag("https://shop.example.com/widget"))
	assert.Equal(t, "WEB", SiteTag("::не url::"))
}
