package indicators

import (
	"github.com/guiajf/dashboard-indicadores/internal/clients/yahoo"
)

// columnPicker tries to select one value column from a raw market table.
type columnPicker func(yahoo.Table) (yahoo.Column, bool)

// pickNamed selects the column with an exact name match, provided it holds at
// least one real observation.
func pickNamed(name string) columnPicker {
	return func(t yahoo.Table) (yahoo.Column, bool) {
		col, ok := t.Column(name)
		if !ok || !col.HasValues() {
			return yahoo.Column{}, false
		}
		return col, true
	}
}

// pickFirstNumeric selects the first column holding any real observation.
// Last-resort fallback: the chosen column may not be economically equivalent
// to adjusted close (a volume column, for indices missing price data), so
// callers log when selection falls through to it.
func pickFirstNumeric() columnPicker {
	return func(t yahoo.Table) (yahoo.Column, bool) {
		for _, col := range t.Columns {
			if col.HasValues() {
				return col, true
			}
		}
		return yahoo.Column{}, false
	}
}

// marketColumnPickers is the ordered selection policy for market tables:
// adjusted close, then close, then whatever numeric column exists.
var marketColumnPickers = []columnPicker{
	pickNamed(yahoo.ColumnAdjClose),
	pickNamed(yahoo.ColumnClose),
	pickFirstNumeric(),
}
