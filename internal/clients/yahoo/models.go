package yahoo

import (
	"math"
	"time"
)

// Well-known column names in chart API responses.
const (
	ColumnAdjClose = "adjclose"
	ColumnClose    = "close"
	ColumnVolume   = "volume"
)

// Column is one named numeric series. Missing observations are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Table is the raw multi-column output of a chart request, keyed by date.
type Table struct {
	Dates   []time.Time
	Columns []Column
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Dates) == 0 }

// Column returns the column with the given name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasValues reports whether the column holds at least one real observation.
func (c Column) HasValues() bool {
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}
