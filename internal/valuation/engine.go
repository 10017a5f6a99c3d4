package valuation

import (
	"fmt"

	"ValueSentinel/internal/model"
)

// methodologyNotes documents the PEG approach on every result.
const methodologyNotes = "PEG-based estimate: fair value = price * (marketPeg + (beta-1)*0.7*marketPeg) / stockPeg; market PEG = market PE / assumed market growth percent"

// newResult seeds a ValuationResult for one request. Warnings start as an
// empty slice so the JSON form is always an array.
func newResult(req *model.ValuationRequest) *model.ValuationResult {
	return &model.ValuationResult{
		Symbol:   req.Symbol,
		Market:   req.Market,
		Method:   req.Method,
		Warnings: []string{},
		Assumptions: &model.Assumptions{
			MarketGrowthRatePercent: req.GrowthRatePercent,
			Notes:                   methodologyNotes,
		},
	}
}

// Synthesize combines the benchmark, fundamentals and forward estimate into
// a ValuationResult. It is a total function over its inputs: every unmet
// precondition finalizes the result with valuationPossible=false plus a
// warning naming the gap, and the fields resolved up to that point stay
// visible. No error, clock read or I/O is involved, so identical inputs
// always produce identical results.
func Synthesize(req *model.ValuationRequest, bench *model.MarketBenchmark, snap *model.FundamentalsSnapshot, est *model.ForwardEstimate) *model.ValuationResult {
	res := newResult(req)
	res.MarketPE = ptr(bench.MarketPE)
	res.MarketPEG = ptr(bench.MarketPEG)
	res.CurrentPrice = ptr(snap.CurrentPrice)
	res.Beta = ptr(snap.Beta)
	res.BetaFallbackUsed = snap.BetaDefaulted
	res.Warnings = append(res.Warnings, snap.Warnings...)
	if snap.ActualEPS != nil {
		res.ActualEPS = ptr(*snap.ActualEPS)
	}
	if snap.ReportedPE != nil {
		res.StockPE = ptr(*snap.ReportedPE)
	}
	if est != nil {
		res.HasForwardEPS = true
		res.EstimatedEPS = ptr(est.EPS)
	}

	// Gate 1: both trailing and forward EPS must be present and finite.
	if snap.ActualEPS == nil || !finite(*snap.ActualEPS) || est == nil || !finite(est.EPS) {
		res.Warnings = append(res.Warnings, "missing EPS data: need both trailing and estimated EPS")
		return res
	}
	actualEPS := *snap.ActualEPS

	// Gate 2: implied growth must be positive, or PEG is undefined.
	growth := est.EPS/actualEPS - 1
	if finite(growth) {
		res.GrowthRate = ptr(growth)
	}
	if !finite(growth) || growth <= 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("non-positive growth rate (estimated EPS %.4f vs actual %.4f): PEG undefined", est.EPS, actualEPS))
		return res
	}

	// Gate 3: resolve stock PE, preferring the provider-reported figure.
	var stockPE float64
	switch {
	case snap.ReportedPE != nil:
		stockPE = *snap.ReportedPE
	case actualEPS != 0 && finite(snap.CurrentPrice/actualEPS):
		stockPE = snap.CurrentPrice / actualEPS
		res.StockPE = ptr(stockPE)
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("stock PE %.2f derived from price/EPS, not provider-reported", stockPE))
	default:
		res.Warnings = append(res.Warnings, "cannot calculate PE: no reported figure and EPS unusable")
		return res
	}

	// Gate 4: PE must be positive.
	if stockPE <= 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("non-positive stock PE (%.2f)", stockPE))
		return res
	}

	// Gate 5: stock PEG must be a positive finite number.
	stockPEG, ok := CalculatePEG(stockPE, growth)
	if !ok {
		res.Warnings = append(res.Warnings, "could not compute stock PEG")
		return res
	}
	res.StockPEG = ptr(stockPEG)

	// Gate 6: fair value.
	fair := snap.CurrentPrice * (bench.MarketPEG + (snap.Beta-1)*DampingCoefficient*bench.MarketPEG) / stockPEG
	if !finite(fair) {
		res.Warnings = append(res.Warnings, "fair value computation did not produce a finite number")
		return res
	}
	res.FairValue = ptr(fair)
	res.ValuationPossible = true
	return res
}

func ptr(v float64) *float64 { return &v }
