package fetcher

import (
	"context"
	"log"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/provider"
)

// ResolveForwardEstimate returns the first analyst estimate for symbol with
// a finite positive average and a reporting date, or nil when the secondary
// provider is missing or yields nothing usable. This path never fails;
// every miss degrades to a nil estimate.
func ResolveForwardEstimate(ctx context.Context, s provider.Secondary, symbol string) *model.ForwardEstimate {
	if s == nil {
		return nil
	}
	est, err := s.EarningsEstimates(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] earnings estimates fetch for %s failed: %v", symbol, err)
		return nil
	}
	for _, rec := range est.Estimates {
		if rec.EPSAverage == nil || rec.Date == "" {
			continue
		}
		if !provider.FinitePositive(*rec.EPSAverage) {
			continue
		}
		return &model.ForwardEstimate{EPS: *rec.EPSAverage, ReportDate: rec.Date}
	}
	return nil
}
