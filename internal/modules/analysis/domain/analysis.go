package domain

// Rating is the three-way recommendation derived from the composite scores.
type Rating string

const (
	RatingBuy  Rating = "BUY"
	RatingHold Rating = "HOLD"
	RatingSell Rating = "SELL"
)

// FactorScores holds the five independent factor scores, each 0-100.
type FactorScores struct {
	Value    int `json:"value"`
	Growth   int `json:"growth"`
	Quality  int `json:"quality"`
	Momentum int `json:"momentum"`
	Risk     int `json:"risk"`
}

// MarketAnalysis is the complete scoring result for one snapshot.
// Constructed fresh per call and never mutated afterwards.
//
// The six named output scores alias the factors: tone is momentum,
// valuation is value, profitability is quality.
type MarketAnalysis struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name,omitempty"`

	Rating     Rating `json:"rating"`
	Conviction int    `json:"conviction"` // [10,90], distance of health from neutral

	Tone          int `json:"tone"`
	Growth        int `json:"growth"`
	Profitability int `json:"profitability"`
	Valuation     int `json:"valuation"`
	Balance       int `json:"balance"`
	Health        int `json:"health"`

	Factors FactorScores `json:"factors"`

	Summary  string   `json:"summary"`
	Thesis   string   `json:"thesis"`
	KeyRisks []string `json:"key_risks"`
}
