package benchmark

import (
	"context"
	"fmt"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/provider"
)

// Resolver supplies the reference market ratio set for a market selector.
// The primary client is passed per call because credentials arrive with
// each request; the static resolver ignores it.
type Resolver interface {
	Resolve(ctx context.Context, primary provider.Primary, market model.Market, growthPercent float64) (*model.MarketBenchmark, error)
	Source() string
}

// defaultMarketPE holds the built-in benchmark trailing PE per market.
var defaultMarketPE = map[model.Market]float64{
	model.MarketUS: 29.0,
	model.MarketHK: 11.0,
}

// Static resolves benchmarks from the built-in constants.
type Static struct{}

func (Static) Source() string { return "static" }

func (Static) Resolve(_ context.Context, _ provider.Primary, market model.Market, growthPercent float64) (*model.MarketBenchmark, error) {
	pe, ok := defaultMarketPE[market]
	if !ok {
		return nil, fmt.Errorf("no benchmark for market %q", market)
	}
	return newBenchmark(market, pe, growthPercent)
}

// proxySymbol maps a market to its broad-market ETF proxy.
var proxySymbol = map[model.Market]string{
	model.MarketUS: "SPY",
	model.MarketHK: "2800.HK",
}

// Live resolves benchmarks by reading the trailing PE of the market's ETF
// proxy from the primary provider.
type Live struct{}

func (Live) Source() string { return "live" }

func (Live) Resolve(ctx context.Context, primary provider.Primary, market model.Market, growthPercent float64) (*model.MarketBenchmark, error) {
	symbol, ok := proxySymbol[market]
	if !ok {
		return nil, fmt.Errorf("no benchmark proxy for market %q", market)
	}
	metrics, err := primary.Metrics(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("benchmark metrics for %s: %w", symbol, err)
	}
	pe, _, ok := provider.FirstField(metrics, provider.PEFields, provider.FinitePositive)
	if !ok {
		return nil, fmt.Errorf("no usable market PE for %s (proxy %s)", market, symbol)
	}
	return newBenchmark(market, pe, growthPercent)
}

func newBenchmark(market model.Market, pe, growthPercent float64) (*model.MarketBenchmark, error) {
	if growthPercent <= 0 {
		return nil, fmt.Errorf("market growth percent must be positive, got %v", growthPercent)
	}
	return &model.MarketBenchmark{Market: market, MarketPE: pe, MarketPEG: pe / growthPercent}, nil
}

// ForSource returns the resolver named by source. Empty selects static.
func ForSource(source string) (Resolver, error) {
	switch source {
	case "", "static":
		return Static{}, nil
	case "live":
		return Live{}, nil
	default:
		return nil, fmt.Errorf("unknown benchmark source %q", source)
	}
}
