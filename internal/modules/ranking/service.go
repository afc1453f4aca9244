// Package ranking orders analyses by a caller-defined weighted profile over
// the six named scores. The engine does not rank; this is the consumer-side
// policy layered on top of stored analyses.
package ranking

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/anagnostou/marketscope/internal/modules/analysis"
)

// Profile holds the relative weight of each named score. Weights must be
// non-negative and sum to a positive value; they are normalized before use.
type Profile struct {
	Tone          float64 `json:"tone"`
	Growth        float64 `json:"growth"`
	Profitability float64 `json:"profitability"`
	Valuation     float64 `json:"valuation"`
	Balance       float64 `json:"balance"`
	Health        float64 `json:"health"`
}

// DefaultProfile leans on the composites, with growth and valuation as
// tie-breakers. Matches the weighting of the balance/health blend itself.
func DefaultProfile() Profile {
	return Profile{
		Tone:          0.05,
		Growth:        0.15,
		Profitability: 0.05,
		Valuation:     0.15,
		Balance:       0.25,
		Health:        0.35,
	}
}

// IsZero reports whether no weight is set at all
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// weights returns the normalized weight vector in score order
func (p Profile) weights() ([]float64, error) {
	w := []float64{p.Tone, p.Growth, p.Profitability, p.Valuation, p.Balance, p.Health}
	for _, v := range w {
		if v < 0 {
			return nil, fmt.Errorf("profile weights must be non-negative, got %v", v)
		}
	}
	total := floats.Sum(w)
	if total <= 0 {
		return nil, fmt.Errorf("profile weights must sum to a positive value")
	}
	floats.Scale(1/total, w)
	return w, nil
}

// Entry is one ranked analysis
type Entry struct {
	Rank   int             `json:"rank"`
	Score  float64         `json:"score"` // weighted profile score, [0,100]
	Record analysis.Record `json:"record"`
}

// Result is a full ranking with distribution statistics over the profile
// scores, useful for judging how differentiated the universe actually is.
type Result struct {
	Entries []Entry `json:"entries"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
}

// Service ranks analyses by profile score
type Service struct {
	log zerolog.Logger
}

// NewService creates a new ranking service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "ranking").Logger(),
	}
}

// Rank sorts records by descending profile score. Ties break by ticker so
// the ordering is fully deterministic.
func (s *Service) Rank(records []analysis.Record, profile Profile) (*Result, error) {
	w, err := profile.weights()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(records))
	scores := make([]float64, len(records))
	for i, record := range records {
		a := record.Analysis
		score := w[0]*float64(a.Tone) +
			w[1]*float64(a.Growth) +
			w[2]*float64(a.Profitability) +
			w[3]*float64(a.Valuation) +
			w[4]*float64(a.Balance) +
			w[5]*float64(a.Health)
		entries[i] = Entry{Score: score, Record: record}
		scores[i] = score
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Record.Analysis.Ticker < entries[j].Record.Analysis.Ticker
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	result := &Result{Entries: entries}
	if len(scores) > 0 {
		result.Mean = stat.Mean(scores, nil)
	}
	if len(scores) > 1 {
		result.StdDev = stat.StdDev(scores, nil)
	}

	s.log.Debug().Int("count", len(entries)).Msg("Ranking computed")
	return result, nil
}
