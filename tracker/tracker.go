// Package tracker runs the scrape-extract-analyze-recommend cycle.
// One call runs to completion synchronously; statistics are recomputed
// from the store on every call, so nothing here caches between cycles.
package tracker

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"pricetrail/analysis"
	"pricetrail/history"
	"pricetrail/models"
	"pricetrail/scraper"
)

type Tracker struct {
	fetcher   scraper.Fetcher
	extractor *scraper.Extractor
	store     history.Store
	rng       *rand.Rand
}

// New wires the tracking pipeline together. rng seeds synthetic-history
// generation; pass nil for a time-seeded source.
func New(fetcher scraper.Fetcher, store history.Store, rng *rand.Rand) *Tracker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Tracker{
		fetcher:   fetcher,
		extractor: scraper.NewExtractor(),
		store:     store,
		rng:       rng,
	}
}

// Track fetches url, extracts the product, appends the observation and
// returns a recommendation against the product's history. Fetch and
// price-extraction failures short-circuit: nothing is persisted and the
// error is surfaced unchanged.
func (t *Tracker) Track(ctx context.Context, url string, target decimal.Decimal) (*models.TrackResult, error) {
	obs, err := t.observe(ctx, url)
	if err != nil {
		return nil, err
	}

	// Whether real history existed is decided by what was in the store
	// before this observation, so a first-ever scrape still gets a
	// synthetic baseline instead of degenerate single-point stats.
	prior, err := t.store.ReadAll(obs.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %v", obs.ProductID, err)
	}

	if err := t.store.Append(*obs); err != nil {
		return nil, fmt.Errorf("failed to persist observation: %v", err)
	}

	stats, provenance, err := t.analyze(obs, prior)
	if err != nil {
		return nil, err
	}

	rec := analysis.Recommend(obs.Price, target, stats)
	log.Printf("Recommendation for %s: %s", obs.ProductID, rec.Verdict)

	result := &models.TrackResult{
		ProductID:      obs.ProductID,
		ProductName:    obs.ProductName,
		Price:          obs.Price,
		TargetPrice:    target,
		Recommendation: rec,
		Statistics:     stats,
		Provenance:     provenance,
		TargetMet:      obs.Price.LessThanOrEqual(target),
	}
	result.AlertMessage = alertMessage(result)

	return result, nil
}

// Refresh re-scrapes a tracked product and appends a fresh observation
// without producing a recommendation. Used by the scheduler.
func (t *Tracker) Refresh(ctx context.Context, url string) (*models.PriceObservation, error) {
	obs, err := t.observe(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := t.store.Append(*obs); err != nil {
		return nil, fmt.Errorf("failed to persist observation: %v", err)
	}
	return obs, nil
}

// observe fetches, extracts and assembles one observation. It never
// returns a zero-price observation.
func (t *Tracker) observe(ctx context.Context, url string) (*models.PriceObservation, error) {
	doc, err := t.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	info, err := t.extractor.Extract(doc, url)
	if err != nil {
		return nil, err
	}

	return &models.PriceObservation{
		ProductID:   scraper.ResolveProductID(url),
		ProductName: info.Name,
		Price:       info.Price,
		Timestamp:   time.Now(),
		Source:      scraper.SiteTag(url),
		URL:         url,
	}, nil
}

// analyze computes statistics over real history when it exists and a
// synthetic monthly series otherwise.
func (t *Tracker) analyze(obs *models.PriceObservation, prior []models.PriceObservation) (*models.TrendStatistics, models.Provenance, error) {
	if len(prior) == 0 {
		log.Printf("No history for %s, generating synthetic series", obs.ProductID)
		series := analysis.SyntheticHistory(obs.ProductID, obs.Price, obs.Timestamp, t.rng)

		stats, err := analysis.Analyze(series)
		if err != nil {
			return nil, models.ProvenanceSynthetic, fmt.Errorf("failed to analyze synthetic series: %v", err)
		}
		// The synthetic points stand in for the past; the observed
		// price is still the current one.
		stats.CurrentPrice = obs.Price
		return stats, models.ProvenanceSynthetic, nil
	}

	full, err := t.store.ReadAll(obs.ProductID)
	if err != nil {
		return nil, models.ProvenanceReal, fmt.Errorf("failed to read history for %s: %v", obs.ProductID, err)
	}

	stats, err := analysis.Analyze(full)
	if err != nil {
		return nil, models.ProvenanceReal, err
	}
	return stats, models.ProvenanceReal, nil
}

// alertMessage mirrors the tracking summary shown to users: a price
// drop alert when the target is met, a monitoring note otherwise.
func alertMessage(r *models.TrackResult) string {
	if r.TargetMet {
		return fmt.Sprintf("PRICE DROP ALERT! %s is at %s, target %s. You save %s.",
			r.ProductName, r.Price, r.TargetPrice, r.TargetPrice.Sub(r.Price).Round(2))
	}
	return fmt.Sprintf("Tracking started for %q. Price is %s above your target. Keep monitoring.",
		r.ProductName, r.Price.Sub(r.TargetPrice).Round(2))
}
