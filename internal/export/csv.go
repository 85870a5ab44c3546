// Package export writes normalized series as the downloadable two-column CSV
// artifact (date, value; dates in DD/MM/YYYY) and parses the same format back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
)

// dateLayout is the Brazilian civil date format used in the export.
const dateLayout = "02/01/2006"

var header = []string{"data", "valor"}

// WriteCSV writes ts to w in the export format.
func WriteCSV(w io.Writer, ts domain.TimeSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range ts.Points {
		record := []string{
			p.Date.Format(dateLayout),
			strconv.FormatFloat(p.Value, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads the export format back into dated observations.
func ParseCSV(r io.Reader) ([]domain.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Skip the header row when present.
	if records[0][0] == header[0] {
		records = records[1:]
	}

	points := make([]domain.Point, 0, len(records))
	for i, record := range records {
		date, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", i+1, record[0], err)
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad value %q: %w", i+1, record[1], err)
		}
		points = append(points, domain.Point{Date: date, Value: value})
	}
	return points, nil
}

// Filename derives the download file name from an indicator name:
// lowercased, spaces and slashes replaced by underscores.
func Filename(indicator string) string {
	name := strings.ToLower(indicator)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return name + ".csv"
}
