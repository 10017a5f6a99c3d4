package valuation

import (
	"context"
	"fmt"
	"log"
	"time"

	"ValueSentinel/internal/benchmark"
	"ValueSentinel/internal/fetcher"
	"ValueSentinel/internal/model"
	"ValueSentinel/internal/provider"
)

// Service runs the full valuation pipeline for one request: market
// benchmark, fundamentals, forward estimate, synthesis.
type Service struct {
	providers provider.Factory
	bench     benchmark.Resolver
}

// NewService creates a valuation service.
func NewService(providers provider.Factory, bench benchmark.Resolver) *Service {
	return &Service{providers: providers, bench: bench}
}

// Valuate executes the pipeline for req. It never returns an error: fatal
// fetch failures are folded into the result as valuationPossible=false with
// the error recorded, so one batch item can never abort its siblings.
func (s *Service) Valuate(ctx context.Context, req *model.ValuationRequest) *model.ValuationResult {
	switch req.Method {
	case model.MethodEarningsTrack, model.MethodAssetBased:
		return stubResult(req)
	}

	res := newResult(req)
	primary := s.providers.Primary(req.PrimaryKey)

	bench, err := s.bench.Resolve(ctx, primary, req.Market, req.GrowthRatePercent)
	if err != nil {
		return fatal(res, fmt.Errorf("market benchmark: %w", err))
	}
	res.MarketPE = ptr(bench.MarketPE)
	res.MarketPEG = ptr(bench.MarketPEG)

	snap, err := fetcher.FetchFundamentals(ctx, primary, req.Symbol)
	if err != nil {
		return fatal(res, fmt.Errorf("fundamentals: %w", err))
	}

	var secondary provider.Secondary
	if req.SecondaryKey != "" {
		secondary = s.providers.Secondary(req.SecondaryKey)
	}
	est := fetcher.ResolveForwardEstimate(ctx, secondary, req.Symbol)

	out := Synthesize(req, bench, snap, est)
	log.Printf("[INFO] valuation %s/%s: possible=%v warnings=%d", req.Symbol, req.Market, out.ValuationPossible, len(out.Warnings))
	return out
}

// fatal folds an unrecoverable fetch error into the not-possible result
// shape required of every per-item computation.
func fatal(res *model.ValuationResult, err error) *model.ValuationResult {
	log.Printf("[WARN] valuation %s/%s failed: %v", res.Symbol, res.Market, err)
	res.ValuationPossible = false
	res.Error = err.Error()
	res.Warnings = append(res.Warnings, err.Error())
	return res
}

// stubResult is the fixed not-implemented contract shape for the
// earnings-track and asset-based methods.
func stubResult(req *model.ValuationRequest) *model.ValuationResult {
	res := newResult(req)
	res.Assumptions = nil
	res.Message = fmt.Sprintf("%s valuation is not implemented", req.Method)
	res.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return res
}
