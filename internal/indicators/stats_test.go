package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
)

func series(values ...float64) domain.TimeSeries {
	ts := domain.TimeSeries{Label: "test"}
	for i, v := range values {
		ts.Points = append(ts.Points, domain.Point{
			Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Value: v,
		})
	}
	return ts
}

func TestSummarize(t *testing.T) {
	sum, ok := Summarize(series(10, 20, 30, 40))
	require.True(t, ok)

	assert.Equal(t, 40.0, sum.Latest)
	assert.Equal(t, 10.0, sum.Min)
	assert.Equal(t, 40.0, sum.Max)
	assert.Equal(t, 25.0, sum.Mean)
	assert.Equal(t, 4, sum.Count)
	require.NotNil(t, sum.DeltaPct)
	assert.InDelta(t, 33.333, *sum.DeltaPct, 0.001)
}

func TestSummarizeSinglePoint(t *testing.T) {
	sum, ok := Summarize(series(11.75))
	require.True(t, ok)
	assert.Equal(t, 11.75, sum.Latest)
	assert.Nil(t, sum.DeltaPct, "delta needs two observations")
}

func TestSummarizeZeroPrevious(t *testing.T) {
	sum, ok := Summarize(series(0, 5))
	require.True(t, ok)
	assert.Nil(t, sum.DeltaPct, "delta against zero is undefined")
}

func TestSummarizeEmpty(t *testing.T) {
	_, ok := Summarize(domain.TimeSeries{})
	assert.False(t, ok)
}

func TestSmooth(t *testing.T) {
	smoothed := Smooth(series(1, 2, 3, 4, 5), 3)
	require.Equal(t, 3, smoothed.Len())
	assert.InDelta(t, 2.0, smoothed.Points[0].Value, 1e-9)
	assert.InDelta(t, 3.0, smoothed.Points[1].Value, 1e-9)
	assert.InDelta(t, 4.0, smoothed.Points[2].Value, 1e-9)
	// Overlay dates align with the tail of the input.
	assert.Equal(t, series(1, 2, 3, 4, 5).Points[2].Date, smoothed.Points[0].Date)
}

func TestSmoothDegenerateWindows(t *testing.T) {
	assert.True(t, Smooth(series(1, 2, 3), 0).Empty())
	assert.True(t, Smooth(series(1, 2, 3), 1).Empty())
	assert.True(t, Smooth(series(1, 2), 5).Empty())
}
