package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const defaultAlphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantageClient implements Secondary against the Alpha Vantage REST API.
type AlphaVantageClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// AlphaVantageOption configures an AlphaVantageClient.
type AlphaVantageOption func(*AlphaVantageClient)

// WithAlphaVantageBaseURL overrides the API base URL.
func WithAlphaVantageBaseURL(u string) AlphaVantageOption {
	return func(c *AlphaVantageClient) { c.baseURL = u }
}

// WithAlphaVantageHTTPClient supplies the HTTP client, shared across requests.
func WithAlphaVantageHTTPClient(hc *http.Client) AlphaVantageOption {
	return func(c *AlphaVantageClient) { c.client = hc }
}

// WithAlphaVantageLimiter supplies the request limiter, shared across requests.
func WithAlphaVantageLimiter(l *rate.Limiter) AlphaVantageOption {
	return func(c *AlphaVantageClient) { c.limiter = l }
}

// NewAlphaVantageClient creates an Alpha Vantage client. Defaults to a 15
// second timeout and 5 requests per minute, the free-tier quota.
func NewAlphaVantageClient(apiKey string, opts ...AlphaVantageOption) *AlphaVantageClient {
	c := &AlphaVantageClient{
		apiKey:  apiKey,
		baseURL: defaultAlphaVantageBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *AlphaVantageClient) Name() string { return "alphavantage" }

// avEstimatesResponse is the earnings estimates response shape. Alpha Vantage
// encodes numbers as strings and reports quota or request problems inside an
// otherwise-200 body via the sentinel fields below.
type avEstimatesResponse struct {
	Symbol      string             `json:"symbol"`
	Estimates   []avEstimateRecord `json:"estimates"`
	Note        string             `json:"Note"`
	Information string             `json:"Information"`
	ErrorMsg    string             `json:"Error Message"`
}

type avEstimateRecord struct {
	Date               string `json:"date"`
	Horizon            string `json:"horizon"`
	EPSEstimateAverage string `json:"eps_estimate_average"`
}

func (c *AlphaVantageClient) EarningsEstimates(ctx context.Context, symbol string) (*EarningsEstimates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("alphavantage rate limiter: %w", err)
	}
	params := url.Values{}
	params.Set("function", "EARNINGS_ESTIMATES")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Provider: "alphavantage", Endpoint: "/query", StatusCode: resp.StatusCode, Message: string(body)}
	}

	var av avEstimatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&av); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	// In-band failure signals must be checked before the payload is trusted.
	if av.Note != "" {
		return nil, &RateLimitError{Provider: "alphavantage", Message: av.Note}
	}
	if av.Information != "" {
		return nil, fmt.Errorf("alphavantage api notice: %s", av.Information)
	}
	if av.ErrorMsg != "" {
		return nil, fmt.Errorf("alphavantage api error: %s", av.ErrorMsg)
	}

	out := &EarningsEstimates{Symbol: av.Symbol, Estimates: make([]EstimateRecord, 0, len(av.Estimates))}
	for _, rec := range av.Estimates {
		out.Estimates = append(out.Estimates, EstimateRecord{
			Date:       rec.Date,
			Horizon:    rec.Horizon,
			EPSAverage: parseAVNumber(rec.EPSEstimateAverage),
		})
	}
	return out, nil
}

// parseAVNumber converts an Alpha Vantage string-encoded number. Empty,
// "None" and unparseable values yield nil rather than zero.
func parseAVNumber(s string) *float64 {
	if s == "" || s == "None" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
