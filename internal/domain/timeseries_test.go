package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTimeSeriesSortsAscending(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	ts := NewTimeSeries("Taxa Selic", []Point{
		{Date: date(2024, 3, 1), Value: 10.75},
		{Date: date(2024, 1, 2), Value: 11.25},
		{Date: date(2024, 2, 1), Value: 11.25},
	}, r)

	require.Equal(t, 3, ts.Len())
	for i := 1; i < ts.Len(); i++ {
		assert.True(t, ts.Points[i-1].Date.Before(ts.Points[i].Date),
			"dates must be strictly increasing")
	}
}

func TestNewTimeSeriesDeduplicatesKeepLast(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	ts := NewTimeSeries("IPCA Mensal", []Point{
		{Date: date(2024, 1, 2), Value: 0.42},
		{Date: date(2024, 1, 2), Value: 0.56},
	}, r)

	require.Equal(t, 1, ts.Len())
	assert.Equal(t, 0.56, ts.Points[0].Value)
}

func TestNewTimeSeriesDropsMissingValues(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	ts := NewTimeSeries("Ibovespa", []Point{
		{Date: date(2024, 1, 2), Value: 132000},
		{Date: date(2024, 1, 3), Value: math.NaN()},
		{Date: date(2024, 1, 4), Value: math.Inf(1)},
		{Date: date(2024, 1, 5), Value: 133500},
	}, r)

	require.Equal(t, 2, ts.Len())
	assert.Equal(t, 132000.0, ts.Points[0].Value)
	assert.Equal(t, 133500.0, ts.Points[1].Value)
}

func TestNewTimeSeriesClampsToRange(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)}
	ts := NewTimeSeries("Câmbio USD/BRL", []Point{
		{Date: date(2023, 12, 29), Value: 4.85},
		{Date: date(2024, 1, 15), Value: 4.91},
		{Date: date(2024, 2, 1), Value: 4.95},
	}, r)

	require.Equal(t, 1, ts.Len())
	assert.Equal(t, date(2024, 1, 15), ts.Points[0].Date)
}

func TestNewTimeSeriesEmptyInput(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)}
	ts := NewTimeSeries("PIB Total", nil, r)

	assert.True(t, ts.Empty())
	_, ok := ts.First()
	assert.False(t, ok)
	_, ok = ts.Last()
	assert.False(t, ok)
}

func TestNewTimeSeriesTruncatesIntradayTimestamps(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	ts := NewTimeSeries("Ibovespa", []Point{
		{Date: time.Date(2024, 1, 2, 13, 30, 0, 0, time.UTC), Value: 131000},
		{Date: time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC), Value: 132000},
	}, r)

	require.Equal(t, 1, ts.Len())
	assert.Equal(t, date(2024, 1, 2), ts.Points[0].Date)
	assert.Equal(t, 132000.0, ts.Points[0].Value)
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	r := DefaultRange(now)

	assert.Equal(t, EpochStart, r.Start)
	assert.True(t, r.Valid())
	// End must be one civil day ahead of Brasília "now".
	tomorrow := now.In(Brasilia()).AddDate(0, 0, 1)
	assert.Equal(t, tomorrow.Day(), r.End.Day())
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)}

	assert.True(t, r.Contains(date(2024, 1, 1)))
	assert.True(t, r.Contains(date(2024, 1, 31)))
	assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(date(2023, 12, 31)))
	assert.False(t, r.Contains(date(2024, 2, 1)))
}
