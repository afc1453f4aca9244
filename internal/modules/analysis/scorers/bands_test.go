package scorers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		min      float64
		max      float64
		expected float64
	}{
		{"within range", 50, 10, 90, 50},
		{"below min", 5, 10, 90, 10},
		{"above max", 95, 10, 90, 90},
		{"at min", 10, 10, 90, 10},
		{"at max", 90, 10, 90, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clamp(tt.v, tt.min, tt.max))
		})
	}
}

func TestAverageScores(t *testing.T) {
	tests := []struct {
		name     string
		scores   []*float64
		expected float64
	}{
		{"all nil returns neutral", []*float64{nil, nil, nil}, neutralScore},
		{"empty returns neutral", nil, neutralScore},
		{"ignores nil members", []*float64{floatPtr(80), nil, floatPtr(40)}, 60},
		{"single value", []*float64{floatPtr(72)}, 72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, averageScores(tt.scores...), 1e-9)
		})
	}
}

func TestAverageOrNil(t *testing.T) {
	assert.Nil(t, averageOrNil(nil, nil))

	avg := averageOrNil(floatPtr(30), nil, floatPtr(60))
	require.NotNil(t, avg)
	assert.InDelta(t, 45, *avg, 1e-9)
}

func TestScoreFromBand(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		min      float64
		max      float64
		expected float64
	}{
		{"nil is neutral", nil, 0, 1, neutralScore},
		{"at min scores floor", floatPtr(0), 0, 1, 10},
		{"at max scores ceiling", floatPtr(1), 0, 1, 95},
		{"below min saturates", floatPtr(-3), 0, 1, 10},
		{"above max saturates", floatPtr(7), 0, 1, 95},
		{"midpoint", floatPtr(0.5), 0, 1, 52.5},
		{"negative domain", floatPtr(-20), -40, 150, 10 + (20.0/190.0)*85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, scoreFromBand(tt.value, tt.min, tt.max), 1e-9)
		})
	}
}

func TestScoreFromBandMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for v := -0.5; v <= 1.5; v += 0.01 {
		score := scoreFromBand(floatPtr(v), 0, 1)
		assert.GreaterOrEqual(t, score, prev, "band score must be non-decreasing at %v", v)
		prev = score
	}
}

func TestScoreFromBandOrNil(t *testing.T) {
	assert.Nil(t, scoreFromBandOrNil(nil, 0, 1))

	score := scoreFromBandOrNil(floatPtr(0.25), 0, 1)
	require.NotNil(t, score)
	assert.InDelta(t, 31.25, *score, 1e-9)
}

func TestScoreFromPE(t *testing.T) {
	tests := []struct {
		name     string
		pe       *float64
		expected *float64
	}{
		{"absent propagates", nil, nil},
		{"negative earnings", floatPtr(-8), floatPtr(20)},
		{"zero earnings", floatPtr(0), floatPtr(20)},
		{"very cheap capped", floatPtr(2), floatPtr(95)},
		{"cheap anchor", floatPtr(5), floatPtr(95)},
		{"mid cheap segment", floatPtr(12), floatPtr(84.5)},
		{"fair anchor", floatPtr(15), floatPtr(80)},
		{"mid fair segment", floatPtr(20), floatPtr(80 - (5.0/15.0)*25)},
		{"rich anchor", floatPtr(30), floatPtr(55)},
		{"mid rich segment", floatPtr(45), floatPtr(47.5)},
		{"expensive anchor", floatPtr(60), floatPtr(40)},
		{"very expensive flat", floatPtr(120), floatPtr(35)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scoreFromPE(tt.pe)
			if tt.expected == nil {
				assert.Nil(t, score)
				return
			}
			require.NotNil(t, score)
			assert.InDelta(t, *tt.expected, *score, 1e-9)
		})
	}
}

func TestScoreFromPEMonotonicAboveFive(t *testing.T) {
	prev := math.Inf(1)
	for pe := 5.0; pe <= 120; pe += 0.5 {
		score := scoreFromPE(floatPtr(pe))
		require.NotNil(t, score)
		assert.LessOrEqual(t, *score, prev, "P/E curve must be non-increasing at %v", pe)
		prev = *score
	}
}
