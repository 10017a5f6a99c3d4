package valuation

import "math"

// DampingCoefficient scales how strongly beta deviation from 1 bends the
// market PEG term in the fair value formula. Tunable, not derived.
const DampingCoefficient = 0.7

// CalculatePEG returns pe / (growthRate * 100). The second return is false
// when PEG is undefined: non-positive growth, a non-finite or non-positive
// PE, or a non-finite quotient.
func CalculatePEG(pe, growthRate float64) (float64, bool) {
	if !finite(growthRate) || growthRate <= 0 {
		return 0, false
	}
	if !finite(pe) || pe <= 0 {
		return 0, false
	}
	peg := pe / (growthRate * 100)
	if !finite(peg) || peg <= 0 {
		return 0, false
	}
	return peg, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
