package scorers

import (
	"math"

	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
)

// Composite blend weights. Balance is the risk/reward view; health leans
// harder on growth and momentum.
const (
	balanceValueWeight    = 0.25
	balanceQualityWeight  = 0.25
	balanceGrowthWeight   = 0.25
	balanceRiskWeight     = 0.15
	balanceMomentumWeight = 0.10

	healthValueWeight    = 0.20
	healthQualityWeight  = 0.25
	healthGrowthWeight   = 0.30
	healthMomentumWeight = 0.15
	healthRiskWeight     = 0.10
)

// Rating thresholds, evaluated in order: BUY first, then SELL, else HOLD.
// Both boundaries are inclusive.
const (
	buyHealthThreshold  = 72
	buyBalanceThreshold = 60
	sellThreshold       = 40
)

// Conviction grows with the health score's distance from neutral,
// independent of rating direction.
const (
	convictionBase = 35
	convictionMin  = 10
	convictionMax  = 90
)

// composite holds the blended scores and the decision derived from them.
type composite struct {
	Balance    int
	Health     int
	Rating     domain.Rating
	Conviction int
}

// aggregate blends the five factor scores into the balance and health
// composites and derives the rating and conviction.
func aggregate(f domain.FactorScores) composite {
	balance := roundScore(
		balanceValueWeight*float64(f.Value) +
			balanceQualityWeight*float64(f.Quality) +
			balanceGrowthWeight*float64(f.Growth) +
			balanceRiskWeight*float64(f.Risk) +
			balanceMomentumWeight*float64(f.Momentum))

	health := roundScore(
		healthValueWeight*float64(f.Value) +
			healthQualityWeight*float64(f.Quality) +
			healthGrowthWeight*float64(f.Growth) +
			healthMomentumWeight*float64(f.Momentum) +
			healthRiskWeight*float64(f.Risk))

	rating := domain.RatingHold
	switch {
	case health >= buyHealthThreshold && balance >= buyBalanceThreshold:
		rating = domain.RatingBuy
	case health <= sellThreshold || balance <= sellThreshold:
		rating = domain.RatingSell
	}

	conviction := roundScore(clamp(
		convictionBase+math.Abs(float64(health)-neutralScore),
		convictionMin, convictionMax))

	return composite{
		Balance:    balance,
		Health:     health,
		Rating:     rating,
		Conviction: conviction,
	}
}
