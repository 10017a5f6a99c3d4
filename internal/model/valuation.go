package model

// ValuationRequest carries the inputs for a single valuation run.
// Constructed once per computation and never mutated afterwards.
type ValuationRequest struct {
	Symbol            string
	Market            Market
	Method            Method
	GrowthRatePercent float64 // assumed market growth rate, in percent
	PrimaryKey        string
	SecondaryKey      string
}

// MarketBenchmark is the reference ratio set for one market.
type MarketBenchmark struct {
	Market    Market
	MarketPE  float64
	MarketPEG float64 // MarketPE / assumed growth percent
}

// FundamentalsSnapshot holds the fetched state for one ticker at one point
// in time. Each optional field is nil until its fetch or fallback succeeds.
// Warnings record every approximation taken, in the order they happened.
type FundamentalsSnapshot struct {
	Symbol        string
	CurrentPrice  float64
	Beta          float64
	BetaDefaulted bool
	ActualEPS     *float64
	ReportedPE    *float64
	Warnings      []string
}

// ForwardEstimate is an analyst forward-EPS figure and the period it covers.
type ForwardEstimate struct {
	EPS        float64
	ReportDate string
}
