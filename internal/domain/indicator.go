// Package domain holds the core types shared by the indicator dashboard:
// indicator specs, date ranges and normalized time series.
package domain

// SourceKind identifies which external provider an indicator comes from.
type SourceKind string

const (
	// SourceMarket is the equities/index price feed (daily bars).
	SourceMarket SourceKind = "market"
	// SourceStatistical is the central-bank statistical series feed (SGS).
	SourceStatistical SourceKind = "statistical"
)

// IndicatorSpec describes a single tracked indicator.
// Ticker is set for market indicators, SeriesCode for statistical ones.
type IndicatorSpec struct {
	Name        string
	Kind        SourceKind
	Ticker      string
	SeriesCode  int
	Unit        string
	Description string

	// Presentation hints served alongside the data. The chart itself is
	// rendered client-side.
	ChartColor string
	ChartFill  bool
}

// SourceLabel returns a human-readable provider name for the spec.
func (s IndicatorSpec) SourceLabel() string {
	if s.Kind == SourceMarket {
		return "Yahoo Finance"
	}
	return "Banco Central do Brasil"
}
