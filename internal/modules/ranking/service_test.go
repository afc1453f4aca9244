package ranking

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anagnostou/marketscope/internal/modules/analysis"
	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
)

func record(ticker string, scores [6]int) analysis.Record {
	return analysis.Record{
		Analysis: domain.MarketAnalysis{
			Ticker:        ticker,
			Tone:          scores[0],
			Growth:        scores[1],
			Profitability: scores[2],
			Valuation:     scores[3],
			Balance:       scores[4],
			Health:        scores[5],
		},
	}
}

func TestRankOrdersByProfileScore(t *testing.T) {
	svc := NewService(zerolog.Nop())

	records := []analysis.Record{
		record("MID", [6]int{50, 50, 50, 50, 50, 50}),
		record("TOP", [6]int{80, 80, 80, 80, 80, 80}),
		record("LOW", [6]int{20, 20, 20, 20, 20, 20}),
	}

	result, err := svc.Rank(records, DefaultProfile())
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)

	assert.Equal(t, "TOP", result.Entries[0].Record.Analysis.Ticker)
	assert.Equal(t, "MID", result.Entries[1].Record.Analysis.Ticker)
	assert.Equal(t, "LOW", result.Entries[2].Record.Analysis.Ticker)

	assert.Equal(t, 1, result.Entries[0].Rank)
	assert.Equal(t, 3, result.Entries[2].Rank)

	// Uniform scores make the profile score exact
	assert.InDelta(t, 80, result.Entries[0].Score, 1e-9)
	assert.InDelta(t, 50, result.Mean, 1e-9)
}

func TestRankTiesBreakByTicker(t *testing.T) {
	svc := NewService(zerolog.Nop())

	records := []analysis.Record{
		record("ZZZ", [6]int{60, 60, 60, 60, 60, 60}),
		record("AAA", [6]int{60, 60, 60, 60, 60, 60}),
	}

	result, err := svc.Rank(records, DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, "AAA", result.Entries[0].Record.Analysis.Ticker)
	assert.Equal(t, "ZZZ", result.Entries[1].Record.Analysis.Ticker)
}

func TestRankCustomProfile(t *testing.T) {
	svc := NewService(zerolog.Nop())

	// Health-only profile ignores everything else
	records := []analysis.Record{
		record("HIGHVAL", [6]int{90, 90, 90, 90, 90, 30}),
		record("HEALTHY", [6]int{10, 10, 10, 10, 10, 70}),
	}

	result, err := svc.Rank(records, Profile{Health: 1})
	require.NoError(t, err)
	assert.Equal(t, "HEALTHY", result.Entries[0].Record.Analysis.Ticker)
	assert.InDelta(t, 70, result.Entries[0].Score, 1e-9)

	// Weights are normalized, so scale does not matter
	scaled, err := svc.Rank(records, Profile{Health: 25})
	require.NoError(t, err)
	assert.InDelta(t, result.Entries[0].Score, scaled.Entries[0].Score, 1e-9)
}

func TestRankInvalidProfiles(t *testing.T) {
	svc := NewService(zerolog.Nop())

	_, err := svc.Rank(nil, Profile{})
	assert.Error(t, err, "all-zero weights cannot be normalized")

	_, err = svc.Rank(nil, Profile{Health: -1, Balance: 2})
	assert.Error(t, err, "negative weights are rejected")
}

func TestRankEmptyUniverse(t *testing.T) {
	svc := NewService(zerolog.Nop())

	result, err := svc.Rank(nil, DefaultProfile())
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.Zero(t, result.Mean)
	assert.Zero(t, result.StdDev)
}
