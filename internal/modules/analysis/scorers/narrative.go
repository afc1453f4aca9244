package scorers

import (
	"fmt"

	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
)

// buildSummary names the company and the factor categories the analysis
// covers. Purely template-driven; no generated text.
func buildSummary(s domain.MarketSnapshot) string {
	name := s.DisplayName()
	if name == "" {
		name = "Unknown company"
	}
	return fmt.Sprintf(
		"%s scored across valuation, growth, profitability, momentum and risk from the latest market snapshot.",
		name)
}

// buildThesis restates the composite picture and the resulting stance.
func buildThesis(f domain.FactorScores, c composite) string {
	return fmt.Sprintf(
		"Health %d with growth %d, profitability %d, valuation %d and risk %d supports a %s stance at conviction %d.",
		c.Health, f.Growth, f.Quality, f.Value, f.Risk, c.Rating, c.Conviction)
}

// buildKeyRisks assembles the caveat list by conditional append. Missing
// profitability or growth fundamentals each add a data caveat; a generic
// trailing-data caveat keeps the list non-empty otherwise.
func buildKeyRisks(s domain.MarketSnapshot) []string {
	var risks []string

	if s.ProfitMargin == nil || s.ReturnOnEquity == nil {
		risks = append(risks,
			"Profitability inputs (profit margin or return on equity) were unavailable; the quality score leans on neutral defaults.")
	}
	if s.RevenueGrowth == nil || s.EPSGrowth == nil {
		risks = append(risks,
			"Growth fundamentals (revenue or EPS growth) were unavailable; the growth score relies on price behaviour.")
	}
	if len(risks) == 0 {
		risks = append(risks,
			"Assessment is based on trailing data only; forward-looking estimates were not considered.")
	}

	return risks
}
