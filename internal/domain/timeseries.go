package domain

import (
	"math"
	"sort"
	"time"
)

// Point is one dated observation.
type Point struct {
	Date  time.Time `msgpack:"d" json:"date"`
	Value float64   `msgpack:"v" json:"value"`
}

// TimeSeries is a normalized single-column series: dates strictly increasing,
// no duplicates, no missing values. An empty Points slice is the valid
// "no data" outcome, not an error.
type TimeSeries struct {
	Label  string  `msgpack:"l"`
	Points []Point `msgpack:"p"`
}

// NewTimeSeries normalizes raw observations into a TimeSeries: rows with
// NaN/Inf values are dropped, dates outside r are discarded, the remainder is
// sorted ascending and deduplicated by calendar date (last write wins).
func NewTimeSeries(label string, points []Point, r DateRange) TimeSeries {
	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		d := civilDate(p.Date)
		if !r.Contains(d) {
			continue
		}
		byDate[d] = p.Value
	}

	out := make([]Point, 0, len(byDate))
	for d, v := range byDate {
		out = append(out, Point{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return TimeSeries{Label: label, Points: out}
}

// Empty reports whether the series has no observations.
func (ts TimeSeries) Empty() bool { return len(ts.Points) == 0 }

// Len returns the number of observations.
func (ts TimeSeries) Len() int { return len(ts.Points) }

// First returns the earliest observation, if any.
func (ts TimeSeries) First() (Point, bool) {
	if ts.Empty() {
		return Point{}, false
	}
	return ts.Points[0], true
}

// Last returns the most recent observation, if any.
func (ts TimeSeries) Last() (Point, bool) {
	if ts.Empty() {
		return Point{}, false
	}
	return ts.Points[len(ts.Points)-1], true
}

// Values returns the observation values in date order.
func (ts TimeSeries) Values() []float64 {
	vals := make([]float64, len(ts.Points))
	for i, p := range ts.Points {
		vals[i] = p.Value
	}
	return vals
}
