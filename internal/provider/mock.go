package provider

import (
	"context"
	"sync"
)

// MockPrimary returns controllable fixed data for development and testing.
type MockPrimary struct {
	Price         float64
	QuoteErr      error
	MetricFields  map[string]float64
	MetricsErr    error
	NetIncome     float64
	NetIncomeYear int
	FinancialsErr error

	mu    sync.Mutex
	calls []string
}

func (m *MockPrimary) Name() string { return "mock-primary" }

func (m *MockPrimary) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

// Calls lists the endpoint invocations seen so far, as "endpoint:symbol".
func (m *MockPrimary) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockPrimary) Quote(_ context.Context, symbol string) (*Quote, error) {
	m.record("quote:" + symbol)
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	return &Quote{Current: m.Price}, nil
}

func (m *MockPrimary) Metrics(_ context.Context, symbol string) (*Metrics, error) {
	m.record("metrics:" + symbol)
	if m.MetricsErr != nil {
		return nil, m.MetricsErr
	}
	fields := make(map[string]float64, len(m.MetricFields))
	for k, v := range m.MetricFields {
		fields[k] = v
	}
	return &Metrics{Fields: fields}, nil
}

func (m *MockPrimary) ReportedFinancials(_ context.Context, symbol string) (*ReportedFinancials, error) {
	m.record("financials:" + symbol)
	if m.FinancialsErr != nil {
		return nil, m.FinancialsErr
	}
	if m.NetIncome == 0 {
		return &ReportedFinancials{}, nil
	}
	year := m.NetIncomeYear
	if year == 0 {
		year = 2024
	}
	return &ReportedFinancials{Annual: []AnnualReport{
		{Year: year, Income: []LineItem{{Concept: "us-gaap_NetIncomeLoss", Value: m.NetIncome}}},
	}}, nil
}

// MockSecondary returns controllable analyst estimates for development and
// testing.
type MockSecondary struct {
	Estimates []EstimateRecord
	Err       error
}

func (m *MockSecondary) Name() string { return "mock-secondary" }

func (m *MockSecondary) EarningsEstimates(_ context.Context, symbol string) (*EarningsEstimates, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &EarningsEstimates{Symbol: symbol, Estimates: m.Estimates}, nil
}

// MockFactory hands out the same mock clients regardless of credentials.
type MockFactory struct {
	P Primary
	S Secondary
}

func (f *MockFactory) Primary(string) Primary     { return f.P }
func (f *MockFactory) Secondary(string) Secondary { return f.S }
