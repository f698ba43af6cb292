// Package history persists price observations as an append-only
// ordered log. Stores never update or delete records; concurrent
// writers are serialized at this boundary, not in the core.
package history

import (
	"errors"

	"pricetrail/models"
)

// ErrSentinelPrice is returned when a caller tries to persist an
// observation whose price is zero or negative. A zero price signals
// extraction failure, never a genuine offer.
var ErrSentinelPrice = errors.New("refusing to persist observation with sentinel price")

// Store is the adapter the core writes observations to and reads
// history back from. ReadAll returns observations for one product
// ordered by timestamp ascending.
type Store interface {
	Append(obs models.PriceObservation) error
	ReadAll(productID string) ([]models.PriceObservation, error)
	Products() ([]models.TrackedProduct, error)
}

// validate rejects sentinel-priced observations before they reach disk.
func validate(obs models.PriceObservation) error {
	if !obs.Price.IsPositive() {
		return ErrSentinelPrice
	}
	if obs.ProductID == "" {
		return errors.New("observation missing product id")
	}
	return nil
}
