package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pricetrail/models"
)

// Decision thresholds relative to the historical low and average.
var (
	nearLowFactor  = decimal.RequireFromString("1.05")
	goodDealFactor = decimal.RequireFromString("0.95")
	waitBigFactor  = decimal.RequireFromString("1.15")
	waitFactor     = decimal.RequireFromString("1.10")

	hundred = decimal.NewFromInt(100)
)

// Recommend maps the current price, target price, and historical
// statistics onto a verdict. The rules are evaluated in order and the
// first match wins; target-met deliberately short-circuits everything
// after it, including conditions that would otherwise say wait.
func Recommend(current, target decimal.Decimal, stats *models.TrendStatistics) models.Recommendation {
	if !current.IsPositive() {
		return models.Recommendation{
			Verdict: models.VerdictInvalidPrice,
			Message: "Invalid price data",
		}
	}

	if stats == nil || stats.SampleCount == 0 ||
		!stats.AveragePrice.IsPositive() || !stats.MinPrice.IsPositive() {
		return models.Recommendation{
			Verdict: models.VerdictInsufficientData,
			Message: "Insufficient historical data for recommendation",
		}
	}

	pctVsAvg := current.Sub(stats.AveragePrice).Div(stats.AveragePrice).Mul(hundred).Round(1)
	pctVsLow := current.Sub(stats.MinPrice).Div(stats.MinPrice).Mul(hundred).Round(1)

	rec := models.Recommendation{
		PctVsAverage: pctVsAvg,
		PctVsLowest:  pctVsLow,
	}

	switch {
	case current.LessThanOrEqual(target):
		rec.Verdict = models.VerdictBuyNowTargetMet
		rec.Message = fmt.Sprintf("BUY NOW - Price is at or below your target (%s <= %s)", current, target)

	case current.LessThanOrEqual(stats.MinPrice.Mul(nearLowFactor)):
		rec.Verdict = models.VerdictBuyNowNearLow
		rec.Message = fmt.Sprintf("BUY NOW - Near historical low (only %s%% above lowest)", pctVsLow)

	case current.LessThanOrEqual(stats.AveragePrice.Mul(goodDealFactor)):
		rec.Verdict = models.VerdictGoodDeal
		rec.Message = fmt.Sprintf("GOOD DEAL - Below average price (%s%% vs average)", pctVsAvg)

	case current.GreaterThanOrEqual(stats.AveragePrice.Mul(waitBigFactor)):
		rec.Verdict = models.VerdictWaitSignificant
		rec.Message = fmt.Sprintf("WAIT - Price is significantly higher than usual (%s%% above average)", pctVsAvg)

	case current.GreaterThanOrEqual(stats.AveragePrice.Mul(waitFactor)):
		rec.Verdict = models.VerdictWait
		rec.Message = fmt.Sprintf("WAIT - Price is higher than usual (%s%% above average)", pctVsAvg)

	default:
		rec.Verdict = models.VerdictFairPrice
		rec.Message = fmt.Sprintf("FAIR PRICE - Close to average price (%s)", stats.AveragePrice.Round(2))
	}

	return rec
}
