// Package analysis turns a product's price history into descriptive
// statistics and a buy/wait recommendation.
package analysis

import (
	"errors"

	"github.com/shopspring/decimal"

	"pricetrail/models"
)

// ErrInsufficientHistory signals an empty history. It is recoverable:
// callers substitute a synthetic series rather than failing the cycle.
var ErrInsufficientHistory = errors.New("no price history for product")

// trendWindow is how many of the most recent observations the trend
// direction is computed over.
const trendWindow = 7

// Analyze computes fresh statistics for an ordered price history.
// One observation is enough for the basic stats; direction needs at
// least two. The result is deterministic for an unchanged history.
func Analyze(history []models.PriceObservation) (*models.TrendStatistics, error) {
	if len(history) == 0 {
		return nil, ErrInsufficientHistory
	}

	prices := make([]decimal.Decimal, len(history))
	for i, obs := range history {
		prices[i] = obs.Price
	}

	stats := &models.TrendStatistics{
		CurrentPrice: prices[len(prices)-1],
		AveragePrice: decimal.Avg(prices[0], prices[1:]...),
		MinPrice:     decimal.Min(prices[0], prices[1:]...),
		MaxPrice:     decimal.Max(prices[0], prices[1:]...),
		Direction:    direction(prices),
		SampleCount:  len(prices),
	}

	return stats, nil
}

// direction compares the last price against the first price of the
// trailing window.
func direction(prices []decimal.Decimal) models.TrendDirection {
	if len(prices) < 2 {
		return models.TrendInsufficient
	}

	window := prices
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}

	first := window[0]
	last := window[len(window)-1]

	switch last.Cmp(first) {
	case 1:
		return models.TrendRising
	case -1:
		return models.TrendFalling
	default:
		return models.TrendStable
	}
}
