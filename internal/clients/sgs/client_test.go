package sgs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
)

func testRange() domain.DateRange {
	return domain.DateRange{
		Start: time.Date(1994, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSeries(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"data": "01/07/1994", "valor": "121.25"},
			{"data": "04/07/1994", "valor": "121.25"},
			{"data": "05/07/1994", "valor": "122.06"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	points, err := client.Series(context.Background(), 4189, testRange())
	require.NoError(t, err)

	assert.Equal(t, "/dados/serie/bcdata.sgs.4189/dados", gotPath)
	assert.Contains(t, gotQuery, "formato=json")
	assert.Contains(t, gotQuery, "dataInicial=01%2F07%2F1994")
	assert.Contains(t, gotQuery, "dataFinal=01%2F01%2F2024")

	require.Len(t, points, 3)
	assert.Equal(t, time.Date(1994, 7, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, 121.25, points[0].Value)
	assert.Equal(t, 122.06, points[2].Value)

	// All observations stay within the requested window.
	r := testRange()
	for _, p := range points {
		assert.True(t, r.Contains(p.Date))
		assert.False(t, p.Date.After(r.End))
	}
}

func TestSeriesSkipsBlankAndMalformedValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"data": "01/01/2024", "valor": "0.42"},
			{"data": "02/01/2024", "valor": ""},
			{"data": "03/01/2024", "valor": "n/d"},
			{"data": "99/99/9999", "valor": "1.0"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	points, err := client.Series(context.Background(), 433, testRange())
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 0.42, points[0].Value)
}

func TestSeriesEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	points, err := client.Series(context.Background(), 4380, testRange())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestSeriesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	points, err := client.Series(context.Background(), 999999, testRange())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestSeriesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := client.Series(context.Background(), 4189, testRange())
	assert.Error(t, err)
}
