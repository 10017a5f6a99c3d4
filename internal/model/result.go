package model

// Assumptions documents the inputs behind a valuation verdict.
type Assumptions struct {
	MarketGrowthRatePercent float64 `json:"marketGrowthRatePercent"`
	Notes                   string  `json:"notes"`
}

// ValuationResult is the sole externally visible output of a valuation.
// Optional numerics stay nil (omitted from JSON) until actually resolved;
// FairValue is only ever set together with ValuationPossible=true.
type ValuationResult struct {
	Symbol            string       `json:"symbol"`
	Market            Market       `json:"market"`
	Method            Method       `json:"method"`
	CurrentPrice      *float64     `json:"currentPrice,omitempty"`
	Beta              *float64     `json:"beta,omitempty"`
	MarketPE          *float64     `json:"marketPe,omitempty"`
	MarketPEG         *float64     `json:"marketPeg,omitempty"`
	StockPE           *float64     `json:"stockPe,omitempty"`
	StockPEG          *float64     `json:"stockPeg,omitempty"`
	ActualEPS         *float64     `json:"actualEps,omitempty"`
	EstimatedEPS      *float64     `json:"estimatedEps,omitempty"`
	GrowthRate        *float64     `json:"growthRate,omitempty"`
	FairValue         *float64     `json:"fairValue,omitempty"`
	ValuationPossible bool         `json:"valuationPossible"`
	HasForwardEPS     bool         `json:"hasForwardEps"`
	BetaFallbackUsed  bool         `json:"betaFallbackUsed"`
	Warnings          []string     `json:"warnings"`
	Assumptions       *Assumptions `json:"assumptions,omitempty"`
	Error             string       `json:"error,omitempty"`
	Message           string       `json:"message,omitempty"`
	Timestamp         string       `json:"timestamp,omitempty"`
}
