package fetcher

import (
	"context"
	"fmt"
	"log"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/provider"
)

// netIncomeConcepts are the income statement concepts probed, in priority
// order, for the net-income-as-EPS-proxy fallback.
var netIncomeConcepts = []string{"us-gaap_NetIncomeLoss", "NetIncomeLoss"}

// FetchFundamentals retrieves price, trailing PE, trailing EPS and beta for
// symbol from the primary provider. A missing or invalid price fails the
// whole fetch; every other gap degrades with a warning on the snapshot.
func FetchFundamentals(ctx context.Context, p provider.Primary, symbol string) (*model.FundamentalsSnapshot, error) {
	quote, err := p.Quote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote fetch for %s: %w", symbol, err)
	}
	if !provider.FinitePositive(quote.Current) {
		return nil, fmt.Errorf("no valid price for %s: got %v", symbol, quote.Current)
	}

	snap := &model.FundamentalsSnapshot{
		Symbol:       symbol,
		CurrentPrice: quote.Current,
		Warnings:     []string{},
	}

	metrics, err := p.Metrics(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] metrics fetch for %s failed: %v, PE/EPS/beta unavailable", symbol, err)
		snap.Warnings = append(snap.Warnings, fmt.Sprintf("metrics fetch failed (%v), PE/EPS/beta unavailable", err))
		metrics = nil
	}

	if pe, _, ok := provider.FirstField(metrics, provider.PEFields, provider.FinitePositive); ok {
		snap.ReportedPE = provider.Float64(pe)
	}
	if eps, _, ok := provider.FirstField(metrics, provider.EPSFields, provider.Finite); ok {
		snap.ActualEPS = provider.Float64(eps)
	}

	if beta, ok := metrics.Field(provider.BetaField); ok && provider.FiniteNonNegative(beta) {
		snap.Beta = beta
	} else {
		// beta = 1 keeps the fair value formula's beta term neutral
		snap.Beta = 1.0
		snap.BetaDefaulted = true
		snap.Warnings = append(snap.Warnings, "beta unavailable, defaulting to 1.0 (no beta adjustment)")
	}

	if snap.ActualEPS == nil {
		fillEPSFromNetIncome(ctx, p, symbol, snap)
	}
	return snap, nil
}

// fillEPSFromNetIncome derives an approximate EPS from the latest annual
// filing's reported net income. The figure is not per-share; it exists only
// to avoid a total fetch failure and is flagged as distorted.
func fillEPSFromNetIncome(ctx context.Context, p provider.Primary, symbol string, snap *model.FundamentalsSnapshot) {
	fin, err := p.ReportedFinancials(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] annual financials fetch for %s failed: %v", symbol, err)
		snap.Warnings = append(snap.Warnings, fmt.Sprintf("annual financials fetch failed (%v), trailing EPS unavailable", err))
		return
	}
	for _, report := range fin.Annual {
		for _, concept := range netIncomeConcepts {
			for _, item := range report.Income {
				if item.Concept == concept && provider.Finite(item.Value) {
					snap.ActualEPS = provider.Float64(item.Value)
					snap.Warnings = append(snap.Warnings,
						fmt.Sprintf("using FY%d reported net income as EPS proxy (not per-share), valuation may be distorted", report.Year))
					return
				}
			}
		}
	}
	snap.Warnings = append(snap.Warnings, "no net income found in annual filings, trailing EPS unavailable")
}
