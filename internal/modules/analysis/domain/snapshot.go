// Package domain contains the pure data types for market analysis.
// Snapshots arrive from external data providers; every numeric field is
// optional, and "absent" is a first-class state distinct from zero.
package domain

import "math"

// MarketSnapshot is a point-in-time record of a company's market and
// fundamental metrics. Fields the provider cannot determine are nil,
// never 0 or NaN.
type MarketSnapshot struct {
	// Identity
	Ticker string `json:"ticker"`
	Name   string `json:"name,omitempty"`

	// Price / trading
	Price            *float64 `json:"price,omitempty"`
	PreviousClose    *float64 `json:"previous_close,omitempty"`
	DayHigh          *float64 `json:"day_high,omitempty"`
	DayLow           *float64 `json:"day_low,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low,omitempty"`
	Volume           *float64 `json:"volume,omitempty"`
	AvgVolume3M      *float64 `json:"avg_volume_3m,omitempty"`

	// Returns (percentages, e.g. -12.5 = -12.5%)
	DayChangePct          *float64 `json:"day_change_pct,omitempty"`
	FiftyTwoWeekChangePct *float64 `json:"fifty_two_week_change_pct,omitempty"`
	ChangeFromLowPct      *float64 `json:"change_from_low_pct,omitempty"`
	ChangeFromHighPct     *float64 `json:"change_from_high_pct,omitempty"`

	// Valuation
	MarketCap    *float64 `json:"market_cap,omitempty"`
	PERatio      *float64 `json:"pe_ratio,omitempty"`
	PEGRatio     *float64 `json:"peg_ratio,omitempty"`
	PriceToSales *float64 `json:"price_to_sales,omitempty"`
	PriceToBook  *float64 `json:"price_to_book,omitempty"`

	// Fundamentals (fractions, e.g. 0.25 = 25%)
	ProfitMargin   *float64 `json:"profit_margin,omitempty"`
	ReturnOnEquity *float64 `json:"return_on_equity,omitempty"`
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EPSGrowth      *float64 `json:"eps_growth,omitempty"`

	// Risk
	Beta *float64 `json:"beta,omitempty"`
}

// SafeNumber returns v unchanged when it is a finite number, nil otherwise.
// This is the single coercion point that keeps NaN and Inf out of scoring.
func SafeNumber(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// Sanitize returns a copy of the snapshot with every numeric field passed
// through SafeNumber. Called at the ingestion boundary so the scorers can
// assume present values are finite.
func (s MarketSnapshot) Sanitize() MarketSnapshot {
	s.Price = SafeNumber(s.Price)
	s.PreviousClose = SafeNumber(s.PreviousClose)
	s.DayHigh = SafeNumber(s.DayHigh)
	s.DayLow = SafeNumber(s.DayLow)
	s.FiftyTwoWeekHigh = SafeNumber(s.FiftyTwoWeekHigh)
	s.FiftyTwoWeekLow = SafeNumber(s.FiftyTwoWeekLow)
	s.Volume = SafeNumber(s.Volume)
	s.AvgVolume3M = SafeNumber(s.AvgVolume3M)
	s.DayChangePct = SafeNumber(s.DayChangePct)
	s.FiftyTwoWeekChangePct = SafeNumber(s.FiftyTwoWeekChangePct)
	s.ChangeFromLowPct = SafeNumber(s.ChangeFromLowPct)
	s.ChangeFromHighPct = SafeNumber(s.ChangeFromHighPct)
	s.MarketCap = SafeNumber(s.MarketCap)
	s.PERatio = SafeNumber(s.PERatio)
	s.PEGRatio = SafeNumber(s.PEGRatio)
	s.PriceToSales = SafeNumber(s.PriceToSales)
	s.PriceToBook = SafeNumber(s.PriceToBook)
	s.ProfitMargin = SafeNumber(s.ProfitMargin)
	s.ReturnOnEquity = SafeNumber(s.ReturnOnEquity)
	s.RevenueGrowth = SafeNumber(s.RevenueGrowth)
	s.EPSGrowth = SafeNumber(s.EPSGrowth)
	s.Beta = SafeNumber(s.Beta)
	return s
}

// DisplayName returns the company name when known, the ticker otherwise.
func (s MarketSnapshot) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Ticker
}
