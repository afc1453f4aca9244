// Package scorers converts sparse market snapshots into normalized 0-100
// factor scores. All band boundaries are fixed, hand-specified constants;
// nothing here is calibrated from data.
package scorers

import "math"

// neutralScore is the score assigned when no information is available.
// Every factor scorer falls back to it rather than failing, so a fully
// empty snapshot still produces a complete (if uninformative) analysis.
const neutralScore = 50.0

// Band scores saturate at these bounds. Extreme-but-plausible inputs are
// never pushed to the absolute 0/100 floor or ceiling; only explicit
// degenerate branches (like a negative P/E) step outside them.
const (
	bandFloor = 10.0
	bandCeil  = 95.0
)

// clamp restricts v to [min, max]
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// averageScores averages the non-nil entries. When every entry is nil it
// returns the neutral score, guaranteeing each factor always has a value.
func averageScores(scores ...*float64) float64 {
	if avg := averageOrNil(scores...); avg != nil {
		return *avg
	}
	return neutralScore
}

// averageOrNil averages the non-nil entries, returning nil when all entries
// are nil. Used where "no information" must propagate to a caller that
// applies its own fallback policy.
func averageOrNil(scores ...*float64) *float64 {
	sum := 0.0
	count := 0
	for _, s := range scores {
		if s == nil {
			continue
		}
		sum += *s
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

// scoreFromBand linearly rescales value from the [min, max] domain onto
// [10, 95], saturating at the edges. A nil value scores neutral.
func scoreFromBand(value *float64, min, max float64) float64 {
	if score := scoreFromBandOrNil(value, min, max); score != nil {
		return *score
	}
	return neutralScore
}

// scoreFromBandOrNil applies the same edge rules as scoreFromBand but
// returns nil for missing input, letting the caller decide whether to
// neutralize or drop the term from an average.
func scoreFromBandOrNil(value *float64, min, max float64) *float64 {
	if value == nil {
		return nil
	}
	v := *value
	score := bandFloor
	switch {
	case v <= min:
		score = bandFloor
	case v >= max:
		score = bandCeil
	default:
		score = bandFloor + ((v-min)/(max-min))*(bandCeil-bandFloor)
	}
	return &score
}

// scoreFromPE maps a trailing P/E ratio onto a piecewise curve. Both very
// cheap and very expensive valuations carry information, so this is not a
// plain band: negative earnings are penalized outright, the cheap end is
// capped (cheaper than 5x is not rewarded further), and the expensive end
// flattens out above 60x.
func scoreFromPE(pe *float64) *float64 {
	if pe == nil {
		return nil
	}
	p := *pe
	var score float64
	switch {
	case p <= 0:
		score = 20 // loss-making / negative earnings penalty
	case p < 5:
		score = 95
	case p <= 15:
		score = 95 - ((p-5)/10)*15
	case p <= 30:
		score = 80 - ((p-15)/15)*25
	case p <= 60:
		score = 55 - ((p-30)/30)*15
	default:
		score = 35
	}
	return &score
}

// roundScore converts a float score to the integer form used in results
func roundScore(score float64) int {
	return int(math.Round(score))
}
