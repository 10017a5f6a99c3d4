package provider

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Factory builds provider clients for one request's credentials while
// sharing HTTP clients and rate limiters across requests. API keys arrive
// per request, so the cheap client structs are built on demand.
type Factory interface {
	Primary(apiKey string) Primary
	Secondary(apiKey string) Secondary
}

// FactoryConfig carries the per-provider connection settings.
type FactoryConfig struct {
	PrimaryBaseURL         string
	PrimaryTimeout         time.Duration
	PrimaryRatePerMinute   int
	SecondaryBaseURL       string
	SecondaryTimeout       time.Duration
	SecondaryRatePerMinute int
}

// HTTPFactory is the production Factory backed by the real provider APIs.
type HTTPFactory struct {
	cfg              FactoryConfig
	primaryClient    *http.Client
	primaryLimiter   *rate.Limiter
	secondaryClient  *http.Client
	secondaryLimiter *rate.Limiter
}

// NewHTTPFactory creates a factory from connection settings, filling in
// provider defaults for any zero value.
func NewHTTPFactory(cfg FactoryConfig) *HTTPFactory {
	if cfg.PrimaryBaseURL == "" {
		cfg.PrimaryBaseURL = defaultFinnhubBaseURL
	}
	if cfg.PrimaryTimeout <= 0 {
		cfg.PrimaryTimeout = 15 * time.Second
	}
	if cfg.PrimaryRatePerMinute <= 0 {
		cfg.PrimaryRatePerMinute = 60
	}
	if cfg.SecondaryBaseURL == "" {
		cfg.SecondaryBaseURL = defaultAlphaVantageBaseURL
	}
	if cfg.SecondaryTimeout <= 0 {
		cfg.SecondaryTimeout = 15 * time.Second
	}
	if cfg.SecondaryRatePerMinute <= 0 {
		cfg.SecondaryRatePerMinute = 5
	}
	return &HTTPFactory{
		cfg:              cfg,
		primaryClient:    &http.Client{Timeout: cfg.PrimaryTimeout},
		primaryLimiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.PrimaryRatePerMinute)), 1),
		secondaryClient:  &http.Client{Timeout: cfg.SecondaryTimeout},
		secondaryLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.SecondaryRatePerMinute)), 1),
	}
}

func (f *HTTPFactory) Primary(apiKey string) Primary {
	return NewFinnhubClient(apiKey,
		WithFinnhubBaseURL(f.cfg.PrimaryBaseURL),
		WithFinnhubHTTPClient(f.primaryClient),
		WithFinnhubLimiter(f.primaryLimiter),
	)
}

func (f *HTTPFactory) Secondary(apiKey string) Secondary {
	return NewAlphaVantageClient(apiKey,
		WithAlphaVantageBaseURL(f.cfg.SecondaryBaseURL),
		WithAlphaVantageHTTPClient(f.secondaryClient),
		WithAlphaVantageLimiter(f.secondaryLimiter),
	)
}
