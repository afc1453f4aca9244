package scorers

import (
	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
)

// Analyzer converts market snapshots into complete analyses. It is stateless
// and side-effect free; concurrent use needs no coordination.
type Analyzer struct{}

// NewAnalyzer creates a new analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores a snapshot and returns the full analysis. It never fails:
// non-finite inputs are coerced to absent, and an entirely empty snapshot
// yields the maximally neutral result (all factors 50, HOLD, conviction 35).
func (a *Analyzer) Analyze(snapshot domain.MarketSnapshot) domain.MarketAnalysis {
	s := snapshot.Sanitize()

	factors := scoreFactors(s)
	comp := aggregate(factors)

	return domain.MarketAnalysis{
		Ticker:     s.Ticker,
		Name:       s.Name,
		Rating:     comp.Rating,
		Conviction: comp.Conviction,

		// Output aliases: tone=momentum, profitability=quality, valuation=value
		Tone:          factors.Momentum,
		Growth:        factors.Growth,
		Profitability: factors.Quality,
		Valuation:     factors.Value,
		Balance:       comp.Balance,
		Health:        comp.Health,

		Factors: factors,

		Summary:  buildSummary(s),
		Thesis:   buildThesis(factors, comp),
		KeyRisks: buildKeyRisks(s),
	}
}
