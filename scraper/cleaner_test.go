package scraper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rupee symbol with separators", "₹1,299.00", "1299.00"},
		{"rs prefix", "Rs. 4,999", "4999"},
		{"inr prefix", "INR 12,345.50", "12345.50"},
		{"mrp label", "MRP: ₹2,499", "2499"},
		{"deal price label", "Deal Price: Rs 799", "799"},
		{"plain number", "1500", "1500"},
		{"decimal", "349.99", "349.99"},
		{"indian digit grouping", "1,29,999", "129999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPrice(tt.input)
			require.NoError(t, err)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}

func TestCleanPriceRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no digits", "Price: TBD"},
		{"currency only", "₹"},
		{"below sanity bound", "0.50"},
		{"above sanity bound", "999,999,999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CleanPrice(tt.input)
			assert.Error(t, err)
		})
	}
}
