package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestSafeNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    *float64
		expected *float64
	}{
		{"nil stays nil", nil, nil},
		{"finite passes through", floatPtr(12.5), floatPtr(12.5)},
		{"zero is a value, not absent", floatPtr(0), floatPtr(0)},
		{"NaN becomes absent", floatPtr(math.NaN()), nil},
		{"positive infinity becomes absent", floatPtr(math.Inf(1)), nil},
		{"negative infinity becomes absent", floatPtr(math.Inf(-1)), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeNumber(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, *tt.expected, *result)
		})
	}
}

func TestSanitize(t *testing.T) {
	snapshot := MarketSnapshot{
		Ticker:         "TEST",
		Price:          floatPtr(101.5),
		PERatio:        floatPtr(math.NaN()),
		Beta:           floatPtr(math.Inf(1)),
		ProfitMargin:   floatPtr(0.2),
		ReturnOnEquity: nil,
	}

	clean := snapshot.Sanitize()

	assert.Nil(t, clean.PERatio)
	assert.Nil(t, clean.Beta)
	assert.Nil(t, clean.ReturnOnEquity)
	require.NotNil(t, clean.Price)
	assert.Equal(t, 101.5, *clean.Price)
	require.NotNil(t, clean.ProfitMargin)
	assert.Equal(t, 0.2, *clean.ProfitMargin)

	// Original is untouched
	assert.NotNil(t, snapshot.PERatio)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Acme Corp", MarketSnapshot{Ticker: "ACME", Name: "Acme Corp"}.DisplayName())
	assert.Equal(t, "ACME", MarketSnapshot{Ticker: "ACME"}.DisplayName())
}
