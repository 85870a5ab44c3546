package indicators

import (
	"time"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
)

// Summary is the metrics panel payload for one indicator.
type Summary struct {
	Latest   float64   `json:"latest"`
	DeltaPct *float64  `json:"delta_pct,omitempty"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Mean     float64   `json:"mean"`
	Count    int       `json:"count"`
	First    time.Time `json:"first"`
	Last     time.Time `json:"last"`
}

// Summarize computes the metrics panel for a series. Returns false for an
// empty series. DeltaPct (percentage change of the latest observation against
// the previous one) is nil when there are fewer than two points or the
// previous value is zero.
func Summarize(ts domain.TimeSeries) (Summary, bool) {
	if ts.Empty() {
		return Summary{}, false
	}

	values := ts.Values()
	sum := Summary{
		Latest: values[len(values)-1],
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   stat.Mean(values, nil),
		Count:  len(values),
		First:  ts.Points[0].Date,
		Last:   ts.Points[len(ts.Points)-1].Date,
	}

	if len(values) > 1 && values[len(values)-2] != 0 {
		delta := (values[len(values)-1]/values[len(values)-2] - 1) * 100
		sum.DeltaPct = &delta
	}

	return sum, true
}

// Smooth returns a simple-moving-average overlay of the series. The first
// window-1 observations have no full window and are omitted. A window of
// zero, one, or more than the series length returns an empty series.
func Smooth(ts domain.TimeSeries, window int) domain.TimeSeries {
	out := domain.TimeSeries{Label: ts.Label}
	if window < 2 || ts.Len() < window {
		return out
	}

	sma := talib.Sma(ts.Values(), window)
	for i := window - 1; i < len(sma); i++ {
		out.Points = append(out.Points, domain.Point{
			Date:  ts.Points[i].Date,
			Value: sma[i],
		})
	}
	return out
}
