package provider

import "context"

// Primary is the capability set required from the fundamentals provider:
// realtime quotes, company metrics and reported annual financials.
type Primary interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
	Metrics(ctx context.Context, symbol string) (*Metrics, error)
	ReportedFinancials(ctx context.Context, symbol string) (*ReportedFinancials, error)
	Name() string
}

// Secondary is the capability set required from the analyst-estimates provider.
type Secondary interface {
	EarningsEstimates(ctx context.Context, symbol string) (*EarningsEstimates, error)
	Name() string
}

// Quote is a realtime price quote.
type Quote struct {
	Current       float64
	PreviousClose float64
}

// Metrics is the loosely typed company fundamentals payload, keyed by metric
// name. Only numeric fields are retained; callers probe named fields in
// priority order via FirstField.
type Metrics struct {
	Fields map[string]float64
}

// Field returns the named metric when present.
func (m *Metrics) Field(name string) (float64, bool) {
	if m == nil || m.Fields == nil {
		return 0, false
	}
	v, ok := m.Fields[name]
	return v, ok
}

// ReportedFinancials holds annual filings, most recent year first.
type ReportedFinancials struct {
	Annual []AnnualReport
}

// AnnualReport is one fiscal year's filing with its income statement items.
type AnnualReport struct {
	Year   int
	Income []LineItem
}

// LineItem is a single reported financial statement line.
type LineItem struct {
	Concept string
	Value   float64
}

// EarningsEstimates holds analyst forward estimates in provider order.
type EarningsEstimates struct {
	Symbol    string
	Estimates []EstimateRecord
}

// EstimateRecord is one analyst-consensus row. EPSAverage is nil when the
// provider omitted or mangled the figure.
type EstimateRecord struct {
	Date       string
	Horizon    string
	EPSAverage *float64
}

// Float64 returns a pointer to v, for filling optional numeric fields.
func Float64(v float64) *float64 { return &v }
