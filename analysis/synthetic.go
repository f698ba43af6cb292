package analysis

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"pricetrail/models"
)

// syntheticPoints is the length of the generated monthly series.
const syntheticPoints = 12

// SyntheticHistory generates a stand-in monthly price series for a
// product with no persisted history, by perturbing the current price
// by up to ±10% per point. This is an explicit approximation policy
// when real data is unavailable, not a data-quality guarantee; results
// derived from it carry ProvenanceSynthetic so downstream consumers
// can never mistake them for real history.
//
// The random source is injected so tests can seed it.
func SyntheticHistory(productID string, currentPrice decimal.Decimal, now time.Time, rng *rand.Rand) []models.PriceObservation {
	if !currentPrice.IsPositive() {
		return nil
	}

	series := make([]models.PriceObservation, 0, syntheticPoints)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := syntheticPoints; i > 0; i-- {
		// Fluctuation in [-0.1, 0.1).
		jitter := decimal.NewFromFloat(rng.Float64()*0.2 - 0.1)
		price := currentPrice.Mul(decimal.NewFromInt(1).Add(jitter)).Round(2)

		series = append(series, models.PriceObservation{
			ProductID:   productID,
			ProductName: "",
			Price:       price,
			Timestamp:   monthStart.AddDate(0, -i, 0),
			Source:      string(models.ProvenanceSynthetic),
		})
	}

	return series
}
