package provider

import "math"

// Priority-ordered metric field lists. Trailing-twelve-months figures are
// preferred, then the excluding-extraordinary-items variant, then annual.
var (
	PEFields  = []string{"peTTM", "peExclExtraTTM", "peAnnual"}
	EPSFields = []string{"epsTTM", "epsExclExtraItemsTTM", "epsAnnual"}
)

// BetaField is the metric key carrying the security's beta.
const BetaField = "beta"

// FirstField probes the named fields in order and returns the first value
// that passes valid, along with the field name that supplied it.
func FirstField(m *Metrics, names []string, valid func(float64) bool) (float64, string, bool) {
	for _, name := range names {
		if v, ok := m.Field(name); ok && valid(v) {
			return v, name, true
		}
	}
	return 0, "", false
}

// Finite reports whether v is a usable number (not NaN or infinite).
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FinitePositive reports whether v is finite and strictly positive.
func FinitePositive(v float64) bool {
	return Finite(v) && v > 0
}

// FiniteNonNegative reports whether v is finite and zero or greater.
func FiniteNonNegative(v float64) bool {
	return Finite(v) && v >= 0
}
