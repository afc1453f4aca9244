package scorers

import (
	"math"

	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
)

// Band domains for the five factor scorers. All fixed constants, chosen to
// cover the plausible range of each metric for listed companies.
const (
	priceToSalesMin = 1.0
	priceToSalesMax = 12.0
	priceToBookMin  = 0.8
	priceToBookMax  = 6.0
	pegMin          = 0.5
	pegMax          = 3.0

	revenueGrowthMax = 0.35
	epsGrowthMax     = 0.45

	profitMarginMin = 0.05
	profitMarginMax = 0.35
	roeMin          = 0.08
	roeMax          = 0.35

	dayChangeBand      = 5.0
	yearChangeMin      = -40.0
	yearChangeMax      = 150.0
	distanceFromHighMin = -60.0

	betaMin = 0.8
	betaMax = 1.8
	// log10 of market cap, roughly $1B to $1T
	logCapMin = 9.0
	logCapMax = 12.0
)

// scoreValue rates valuation cheapness/richness from the P/E curve plus
// banded price/sales, price/book and PEG multiples. Absent members drop out
// of the average; an all-absent set scores neutral.
func scoreValue(s domain.MarketSnapshot) int {
	return roundScore(averageScores(
		scoreFromPE(s.PERatio),
		scoreFromBandOrNil(s.PriceToSales, priceToSalesMin, priceToSalesMax),
		scoreFromBandOrNil(s.PriceToBook, priceToBookMin, priceToBookMax),
		scoreFromBandOrNil(s.PEGRatio, pegMin, pegMax),
	))
}

// scoreGrowth rates expansion using a two-stage fallback: fundamental
// revenue/EPS growth when reported, and price behaviour (52-week change, or
// position within the 52-week range) as the market-implied proxy. When both
// stages produce a score they are averaged; fundamentals are never silently
// diluted by an absent price stage.
func scoreGrowth(s domain.MarketSnapshot) int {
	fundamental := averageOrNil(
		scoreFromBandOrNil(s.RevenueGrowth, 0, revenueGrowthMax),
		scoreFromBandOrNil(s.EPSGrowth, 0, epsGrowthMax),
	)
	return roundScore(averageScores(fundamental, priceGrowthScore(s)))
}

// priceGrowthScore is the price-based growth stage. Prefers the reported
// 52-week change; falls back to the price's position within the 52-week
// range when the change is unavailable.
func priceGrowthScore(s domain.MarketSnapshot) *float64 {
	if s.FiftyTwoWeekChangePct != nil {
		return scoreFromBandOrNil(s.FiftyTwoWeekChangePct, yearChangeMin, yearChangeMax)
	}
	if s.Price != nil && s.FiftyTwoWeekLow != nil && s.FiftyTwoWeekHigh != nil &&
		*s.FiftyTwoWeekHigh > *s.FiftyTwoWeekLow {
		position := (*s.Price - *s.FiftyTwoWeekLow) / (*s.FiftyTwoWeekHigh - *s.FiftyTwoWeekLow)
		return scoreFromBandOrNil(&position, 0, 1)
	}
	return nil
}

// scoreQuality rates profitability from profit margin and return on equity.
func scoreQuality(s domain.MarketSnapshot) int {
	return roundScore(averageScores(
		scoreFromBandOrNil(s.ProfitMargin, profitMarginMin, profitMarginMax),
		scoreFromBandOrNil(s.ReturnOnEquity, roeMin, roeMax),
	))
}

// scoreMomentum rates recent price behaviour: the 1-day move, the 52-week
// move, and how far below the 52-week high the price sits (closer to the
// high scores better).
func scoreMomentum(s domain.MarketSnapshot) int {
	var distanceFromHigh *float64
	if s.ChangeFromHighPct != nil {
		d := -math.Abs(*s.ChangeFromHighPct)
		distanceFromHigh = &d
	}
	return roundScore(averageScores(
		scoreFromBandOrNil(s.DayChangePct, -dayChangeBand, dayChangeBand),
		scoreFromBandOrNil(s.FiftyTwoWeekChangePct, yearChangeMin, yearChangeMax),
		scoreFromBandOrNil(distanceFromHigh, distanceFromHighMin, 0),
	))
}

// scoreRisk rates the risk profile from beta and company size. The size term
// uses log10 of market cap and drops out entirely when the cap is absent or
// non-positive.
func scoreRisk(s domain.MarketSnapshot) int {
	var size *float64
	if s.MarketCap != nil && *s.MarketCap > 0 {
		lg := math.Log10(*s.MarketCap)
		size = &lg
	}
	return roundScore(averageScores(
		scoreFromBandOrNil(s.Beta, betaMin, betaMax),
		scoreFromBandOrNil(size, logCapMin, logCapMax),
	))
}

// scoreFactors computes all five independent factor scores for a snapshot.
func scoreFactors(s domain.MarketSnapshot) domain.FactorScores {
	return domain.FactorScores{
		Value:    scoreValue(s),
		Growth:   scoreGrowth(s),
		Quality:  scoreQuality(s),
		Momentum: scoreMomentum(s),
		Risk:     scoreRisk(s),
	}
}
