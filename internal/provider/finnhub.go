package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

const defaultFinnhubBaseURL = "https://finnhub.io/api/v1"

// FinnhubClient implements Primary against the Finnhub REST API.
type FinnhubClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// FinnhubOption configures a FinnhubClient.
type FinnhubOption func(*FinnhubClient)

// WithFinnhubBaseURL overrides the API base URL.
func WithFinnhubBaseURL(u string) FinnhubOption {
	return func(c *FinnhubClient) { c.baseURL = u }
}

// WithFinnhubHTTPClient supplies the HTTP client, shared across requests.
func WithFinnhubHTTPClient(hc *http.Client) FinnhubOption {
	return func(c *FinnhubClient) { c.client = hc }
}

// WithFinnhubLimiter supplies the request limiter, shared across requests.
func WithFinnhubLimiter(l *rate.Limiter) FinnhubOption {
	return func(c *FinnhubClient) { c.limiter = l }
}

// NewFinnhubClient creates a Finnhub client. Defaults to a 15 second timeout
// and 60 requests per minute.
func NewFinnhubClient(apiKey string, opts ...FinnhubOption) *FinnhubClient {
	c := &FinnhubClient{
		apiKey:  apiKey,
		baseURL: defaultFinnhubBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/60), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *FinnhubClient) Name() string { return "finnhub" }

// get performs a rate-limited GET against path and decodes the JSON body
// into out. A 429 becomes a RateLimitError, any other non-200 an APIError.
func (c *FinnhubClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("finnhub rate limiter: %w", err)
	}
	params.Set("token", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("finnhub fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{Provider: "finnhub", Message: fmt.Sprintf("status 429 on %s", path)}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Provider: "finnhub", Endpoint: path, StatusCode: resp.StatusCode, Message: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("finnhub decode %s: %w", path, err)
	}
	return nil
}

// finnhubQuote is the quote endpoint response shape.
type finnhubQuote struct {
	C  float64 `json:"c"`  // current price
	PC float64 `json:"pc"` // previous close
}

func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (*Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	var q finnhubQuote
	if err := c.get(ctx, "/quote", params, &q); err != nil {
		return nil, err
	}
	return &Quote{Current: q.C, PreviousClose: q.PC}, nil
}

// finnhubMetrics is the company metrics response shape. The metric object
// mixes numbers, strings and nulls; only numeric fields are kept.
type finnhubMetrics struct {
	Metric map[string]interface{} `json:"metric"`
}

func (c *FinnhubClient) Metrics(ctx context.Context, symbol string) (*Metrics, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("metric", "all")
	var m finnhubMetrics
	if err := c.get(ctx, "/stock/metric", params, &m); err != nil {
		return nil, err
	}
	fields := make(map[string]float64, len(m.Metric))
	for k, v := range m.Metric {
		if n, ok := toFloat(v); ok {
			fields[k] = n
		}
	}
	return &Metrics{Fields: fields}, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// finnhubFinancials is the reported financials response shape. Only the
// income statement section is consumed.
type finnhubFinancials struct {
	Data []struct {
		Year   int `json:"year"`
		Report struct {
			IC []struct {
				Concept string      `json:"concept"`
				Value   interface{} `json:"value"`
			} `json:"ic"`
		} `json:"report"`
	} `json:"data"`
}

func (c *FinnhubClient) ReportedFinancials(ctx context.Context, symbol string) (*ReportedFinancials, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("freq", "annual")
	var f finnhubFinancials
	if err := c.get(ctx, "/stock/financials-reported", params, &f); err != nil {
		return nil, err
	}
	out := &ReportedFinancials{Annual: make([]AnnualReport, 0, len(f.Data))}
	for _, d := range f.Data {
		rep := AnnualReport{Year: d.Year}
		for _, item := range d.Report.IC {
			if v, ok := toFloat(item.Value); ok {
				rep.Income = append(rep.Income, LineItem{Concept: item.Concept, Value: v})
			}
		}
		out.Annual = append(out.Annual, rep)
	}
	// Most recent year first
	sort.Slice(out.Annual, func(i, j int) bool { return out.Annual[i].Year > out.Annual[j].Year })
	return out, nil
}
