package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
)

func TestWriteCSVFormat(t *testing.T) {
	ts := domain.TimeSeries{
		Label: "Taxa Selic",
		Points: []domain.Point{
			{Date: time.Date(1994, 7, 1, 0, 0, 0, 0, time.UTC), Value: 121.25},
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Value: 11.75},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ts))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "data,valor", lines[0])
	assert.Equal(t, "01/07/1994,121.25", lines[1])
	assert.Equal(t, "02/01/2024,11.75", lines[2])
}

func TestCSVRoundTrip(t *testing.T) {
	ts := domain.TimeSeries{
		Label: "Câmbio USD/BRL",
		Points: []domain.Point{
			{Date: time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC), Value: 4.8912},
			{Date: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), Value: 4.92},
			{Date: time.Date(2023, 12, 4, 0, 0, 0, 0, time.UTC), Value: 4.9},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ts))

	points, err := ParseCSV(&buf)
	require.NoError(t, err)
	require.Len(t, points, len(ts.Points))
	for i, p := range points {
		assert.True(t, p.Date.Equal(ts.Points[i].Date), "date %d", i)
		assert.Equal(t, ts.Points[i].Value, p.Value, "value %d", i)
	}
}

func TestWriteCSVEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, domain.TimeSeries{Label: "PIB Total"}))
	assert.Equal(t, "data,valor\n", buf.String())

	points, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestParseCSVBadRows(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("data,valor\n2024-01-02,11.75\n"))
	assert.Error(t, err, "ISO dates are not the export format")

	_, err = ParseCSV(strings.NewReader("data,valor\n02/01/2024,abc\n"))
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "taxa_de_desemprego.csv", Filename("Taxa de Desemprego"))
	assert.Equal(t, "ibovespa.csv", Filename("Ibovespa"))
	assert.Equal(t, "câmbio_usd_brl.csv", Filename("Câmbio USD/BRL"))
}
