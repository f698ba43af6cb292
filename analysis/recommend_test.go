package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"pricetrail/models"
)

func statsFor(current, avg, min, max float64, n int) *models.TrendStatistics {
	return &models.TrendStatistics{
		CurrentPrice: decimal.NewFromFloat(current),
		AveragePrice: decimal.NewFromFloat(avg),
		MinPrice:     decimal.NewFromFloat(min),
		MaxPrice:     decimal.NewFromFloat(max),
		Direction:    models.TrendStable,
		SampleCount:  n,
	}
}

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestRecommendInvalidPriceUnconditional(t *testing.T) {
	// Zero price wins over everything, target and history included.
	rec := Recommend(d(0), d(100), statsFor(0, 100, 90, 110, 5))
	assert.Equal(t, models.VerdictInvalidPrice, rec.Verdict)

	rec = Recommend(d(-10), d(100), nil)
	assert.Equal(t, models.VerdictInvalidPrice, rec.Verdict)
}

func TestRecommendInsufficientData(t *testing.T) {
	rec := Recommend(d(100), d(90), nil)
	assert.Equal(t, models.VerdictInsufficientData, rec.Verdict)

	// Zero average or minimum would divide by zero; report the signal
	// instead of propagating a numeric error.
	rec = Recommend(d(100), d(90), statsFor(100, 0, 0, 0, 3))
	assert.Equal(t, models.VerdictInsufficientData, rec.Verdict)
}

func TestRecommendTargetMetPrecedence(t *testing.T) {
	// 95 <= 100 target, and with avg 200 the good-deal rule would fire
	// too; target-met wins because rule order is the tie-break.
	rec := Recommend(d(95), d(100), statsFor(95, 200, 50, 300, 10))
	assert.Equal(t, models.VerdictBuyNowTargetMet, rec.Verdict)

	// Even when the price is far above average, a met target still
	// short-circuits past the wait rules.
	rec = Recommend(d(95), d(100), statsFor(95, 60, 40, 70, 10))
	assert.Equal(t, models.VerdictBuyNowTargetMet, rec.Verdict)
}

func TestRecommendNearLow(t *testing.T) {
	// 104 <= 100 * 1.05
	rec := Recommend(d(104), d(50), statsFor(104, 120, 100, 140, 10))
	assert.Equal(t, models.VerdictBuyNowNearLow, rec.Verdict)
	assert.True(t, rec.PctVsLowest.Equal(d(4)), "got %s", rec.PctVsLowest)

	// 106 > 105: just outside.
	rec = Recommend(d(106), d(50), statsFor(106, 200, 100, 240, 10))
	assert.NotEqual(t, models.VerdictBuyNowNearLow, rec.Verdict)
}

func TestRecommendLadder(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		want    models.Verdict
	}{
		{"good deal below average", 94, models.VerdictGoodDeal},
		{"wait significant", 115, models.VerdictWaitSignificant},
		{"wait", 111, models.VerdictWait},
		{"fair price", 100, models.VerdictFairPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// avg 100, min 50 so the near-low rule stays quiet.
			rec := Recommend(d(tt.current), d(10), statsFor(tt.current, 100, 50, 150, 10))
			assert.Equal(t, tt.want, rec.Verdict)
		})
	}
}

func TestRecommendCarriesDeltas(t *testing.T) {
	rec := Recommend(d(110), d(10), statsFor(110, 100, 50, 150, 10))
	assert.Equal(t, models.VerdictWait, rec.Verdict)
	assert.True(t, rec.PctVsAverage.Equal(d(10)), "got %s", rec.PctVsAverage)
	assert.True(t, rec.PctVsLowest.Equal(d(120)), "got %s", rec.PctVsLowest)
	assert.NotEmpty(t, rec.Message)
}
