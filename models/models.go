package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceObservation is one timestamped price reading for a product.
// Observations are append-only: once persisted they are never mutated
// or deleted. A price of zero is the extraction-failure sentinel and
// must never reach the history store.
type PriceObservation struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
	Source      string          `json:"source"`
	URL         string          `json:"url"`
}

// ProductInfo is the extractor's output: what the page says the
// product is and what it currently costs. MatchedBy records which
// selector or pattern produced the price (diagnostic only).
type ProductInfo struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	MatchedBy string          `json:"matched_by,omitempty"`
}

// TrendDirection classifies the recent movement of a price series.
type TrendDirection string

const (
	TrendRising       TrendDirection = "RISING"
	TrendFalling      TrendDirection = "FALLING"
	TrendStable       TrendDirection = "STABLE"
	TrendInsufficient TrendDirection = "INSUFFICIENT_DATA"
)

// TrendStatistics is a derived value object computed fresh for each
// analysis request. It has no identity beyond the call that produced it.
type TrendStatistics struct {
	CurrentPrice decimal.Decimal `json:"current_price"`
	AveragePrice decimal.Decimal `json:"average_price"`
	MinPrice     decimal.Decimal `json:"min_price"`
	MaxPrice     decimal.Decimal `json:"max_price"`
	Direction    TrendDirection  `json:"trend_direction"`
	SampleCount  int             `json:"sample_count"`
}

// Verdict is the fixed set of recommendation categories.
type Verdict string

const (
	VerdictBuyNowTargetMet  Verdict = "BUY_NOW_TARGET_MET"
	VerdictBuyNowNearLow    Verdict = "BUY_NOW_NEAR_LOW"
	VerdictGoodDeal         Verdict = "GOOD_DEAL"
	VerdictFairPrice        Verdict = "FAIR_PRICE"
	VerdictWait             Verdict = "WAIT"
	VerdictWaitSignificant  Verdict = "WAIT_SIGNIFICANT"
	VerdictInsufficientData Verdict = "INSUFFICIENT_DATA"
	VerdictInvalidPrice     Verdict = "INVALID_PRICE"
)

// Recommendation is the engine's result: a verdict plus the percentage
// deltas that justified it, for display.
type Recommendation struct {
	Verdict      Verdict         `json:"verdict"`
	Message      string          `json:"message"`
	PctVsAverage decimal.Decimal `json:"pct_vs_average"`
	PctVsLowest  decimal.Decimal `json:"pct_vs_lowest"`
}

// Provenance marks whether a statistics series came from real persisted
// history or from synthetic generation.
type Provenance string

const (
	ProvenanceReal      Provenance = "real"
	ProvenanceSynthetic Provenance = "synthetic"
)

// TrackResult is the bundle returned to callers after one
// scrape-extract-analyze-recommend cycle.
type TrackResult struct {
	ProductID      string           `json:"product_id"`
	ProductName    string           `json:"product_name"`
	Price          decimal.Decimal  `json:"price"`
	TargetPrice    decimal.Decimal  `json:"target_price"`
	Currency       string           `json:"currency"`
	Recommendation Recommendation   `json:"recommendation"`
	Statistics     *TrendStatistics `json:"statistics"`
	Provenance     Provenance       `json:"provenance"`
	TargetMet      bool             `json:"target_met"`
	AlertMessage   string           `json:"alert_message"`
}

// TrackedProduct is a product known to the history store, used by the
// scheduler to re-check prices.
type TrackedProduct struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	URL         string    `json:"url"`
	LastSeen    time.Time `json:"last_seen"`
}

// TrackRequest is the request body for starting a tracking cycle.
type TrackRequest struct {
	URL         string  `json:"url"`
	TargetPrice float64 `json:"target_price"`
	Currency    string  `json:"currency"`
}

// Validate checks the request for obviously bad input.
func (r *TrackRequest) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("url is required")
	}
	if r.TargetPrice <= 0 {
		return fmt.Errorf("target_price must be positive")
	}
	return nil
}

// DisplayName returns the product name truncated for display. Title
// truncation is the caller's job, never the extractor's.
func (o *PriceObservation) DisplayName(max int) string {
	if max <= 0 || len(o.ProductName) <= max {
		return o.ProductName
	}
	return o.ProductName[:max] + "..."
}
