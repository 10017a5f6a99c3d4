package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"
)

func newTestAlphaVantage(url string) *AlphaVantageClient {
	return NewAlphaVantageClient("test-key",
		WithAlphaVantageBaseURL(url),
		WithAlphaVantageLimiter(rate.NewLimiter(rate.Inf, 1)),
	)
}

func TestAlphaVantageClient_EarningsEstimates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "EARNINGS_ESTIMATES" {
			t.Errorf("expected function EARNINGS_ESTIMATES, got %s", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("expected apikey test-key, got %s", got)
		}
		w.Write([]byte(`{"symbol":"AAPL","estimates":[
			{"date":"2026-09-30","horizon":"current fiscal year","eps_estimate_average":"6.05"},
			{"date":"2027-09-30","horizon":"next fiscal year","eps_estimate_average":"None"}
		]}`))
	}))
	defer srv.Close()

	est, err := newTestAlphaVantage(srv.URL).EarningsEstimates(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", est.Symbol)
	}
	if len(est.Estimates) != 2 {
		t.Fatalf("expected 2 records, got %d", len(est.Estimates))
	}
	first := est.Estimates[0]
	if first.EPSAverage == nil || *first.EPSAverage != 6.05 {
		t.Errorf("expected first EPS average 6.05, got %v", first.EPSAverage)
	}
	if first.Date != "2026-09-30" {
		t.Errorf("expected date 2026-09-30, got %s", first.Date)
	}
	// "None" must parse to absent, not zero
	if est.Estimates[1].EPSAverage != nil {
		t.Errorf("expected second EPS average to be nil, got %v", *est.Estimates[1].EPSAverage)
	}
}

func TestAlphaVantageClient_InBandSentinels(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		rateLimit bool
	}{
		{"note", `{"Note":"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`, true},
		{"information", `{"Information":"The demo API key is for demo purposes only."}`, false},
		{"error message", `{"Error Message":"Invalid API call."}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// sentinels always ride inside a 200 response
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestAlphaVantage(srv.URL).EarningsEstimates(context.Background(), "AAPL")
			if err == nil {
				t.Fatal("expected sentinel payload to fail")
			}
			var rle *RateLimitError
			if got := errors.As(err, &rle); got != tt.rateLimit {
				t.Errorf("RateLimitError=%v, expected %v (err: %v)", got, tt.rateLimit, err)
			}
		})
	}
}

func TestAlphaVantageClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestAlphaVantage(srv.URL).EarningsEstimates(context.Background(), "AAPL")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", apiErr.StatusCode)
	}
}

func TestParseAVNumber(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"6.05", Float64(6.05)},
		{"-0.12", Float64(-0.12)},
		{"None", nil},
		{"-", nil},
		{"", nil},
		{"N/A", nil},
	}
	for _, tt := range tests {
		got := parseAVNumber(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("parseAVNumber(%q): expected nil, got %v", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("parseAVNumber(%q): expected %v, got %v", tt.in, *tt.want, got)
		}
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{Provider: "finnhub", Endpoint: "/quote", StatusCode: 403, Message: "forbidden"}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "/quote") {
		t.Errorf("error string missing detail: %s", err.Error())
	}
}
