package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"pricetrail/history"
	"pricetrail/tracker"
)

// PriceChecker periodically re-scrapes every product in the history
// store so trend statistics keep accumulating real observations.
type PriceChecker struct {
	cron     *cron.Cron
	tracker  *tracker.Tracker
	store    history.Store
	schedule string
}

func NewPriceChecker(t *tracker.Tracker, store history.Store, schedule string) *PriceChecker {
	return &PriceChecker{
		cron:     cron.New(cron.WithSeconds()),
		tracker:  t,
		store:    store,
		schedule: schedule,
	}
}

// Start schedules the periodic re-checks.
func (pc *PriceChecker) Start() {
	_, err := pc.cron.AddFunc(pc.schedule, pc.checkAllProducts)
	if err != nil {
		log.Printf("Failed to schedule price checker: %v", err)
		return
	}

	pc.cron.Start()
	log.Printf("Price checker scheduled (%s)", pc.schedule)
}

// Stop stops the scheduled price checking.
func (pc *PriceChecker) Stop() {
	if pc.cron != nil {
		pc.cron.Stop()
	}
}

// checkAllProducts refreshes every tracked product sequentially.
// Appends serialize at the store boundary, but one browser session at
// a time is also gentler on the target sites.
func (pc *PriceChecker) checkAllProducts() {
	products, err := pc.store.Products()
	if err != nil {
		log.Printf("Failed to list products for re-check: %v", err)
		return
	}

	if len(products) == 0 {
		log.Println("No products to re-check")
		return
	}

	log.Printf("Re-checking prices for %d products", len(products))

	for _, p := range products {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		obs, err := pc.tracker.Refresh(ctx, p.URL)
		cancel()

		if err != nil {
			log.Printf("Failed to re-check %s (%s): %v", p.ProductName, p.URL, err)
			continue
		}
		log.Printf("Re-checked %s: %s", obs.ProductName, obs.Price)
	}
}
