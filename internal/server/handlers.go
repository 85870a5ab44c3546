package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
	"github.com/guiajf/dashboard-indicadores/internal/export"
	"github.com/guiajf/dashboard-indicadores/internal/indicators"
)

// indicatorInfo is one registry listing entry.
type indicatorInfo struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	ChartColor  string `json:"chart_color"`
	ChartFill   bool   `json:"chart_fill"`
}

// seriesPoint is one observation in a series response.
type seriesPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// handleListIndicators returns the registry with presentation metadata and
// the last-updated timestamp in Brasília local time.
func (s *Server) handleListIndicators(w http.ResponseWriter, r *http.Request) {
	specs := s.registry.List()
	infos := make([]indicatorInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, indicatorInfo{
			Name:        spec.Name,
			Source:      spec.SourceLabel(),
			Unit:        spec.Unit,
			Description: spec.Description,
			ChartColor:  spec.ChartColor,
			ChartFill:   spec.ChartFill,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"indicators": infos,
		"updated_at": time.Now().In(domain.Brasilia()).Format("02/01/2006 15:04"),
	})
}

// fetchSeries resolves {name} and fetches its normalized series over the
// default window. Writes the error response itself when the name is unknown.
func (s *Server) fetchSeries(w http.ResponseWriter, r *http.Request) (domain.TimeSeries, domain.IndicatorSpec, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid indicator name")
		return domain.TimeSeries{}, domain.IndicatorSpec{}, false
	}

	spec, ok := s.registry.Get(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "indicator not found: "+name)
		return domain.TimeSeries{}, domain.IndicatorSpec{}, false
	}

	ts, err := s.indicators.Fetch(r.Context(), name, domain.DefaultRange(time.Now()))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownIndicator) {
			s.writeError(w, http.StatusNotFound, "indicator not found: "+name)
		} else {
			s.writeError(w, http.StatusInternalServerError, "failed to fetch indicator")
		}
		return domain.TimeSeries{}, domain.IndicatorSpec{}, false
	}
	return ts, spec, true
}

// handleSeries returns the normalized series, optionally with a
// simple-moving-average overlay (?sma=N).
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	ts, spec, ok := s.fetchSeries(w, r)
	if !ok {
		return
	}

	payload := map[string]interface{}{
		"name":   spec.Name,
		"unit":   spec.Unit,
		"empty":  ts.Empty(),
		"points": toSeriesPoints(ts),
	}

	if raw := r.URL.Query().Get("sma"); raw != "" {
		window, err := strconv.Atoi(raw)
		if err != nil || window < 2 {
			s.writeError(w, http.StatusBadRequest, "sma must be an integer >= 2")
			return
		}
		payload["sma"] = toSeriesPoints(indicators.Smooth(ts, window))
	}

	s.writeJSON(w, http.StatusOK, payload)
}

// handleSummary returns the metrics panel payload.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ts, spec, ok := s.fetchSeries(w, r)
	if !ok {
		return
	}

	sum, hasData := indicators.Summarize(ts)
	payload := map[string]interface{}{
		"name":     spec.Name,
		"unit":     spec.Unit,
		"has_data": hasData,
	}
	if hasData {
		payload["summary"] = sum
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// handleCSV streams the series as the downloadable CSV artifact.
func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	ts, spec, ok := s.fetchSeries(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(spec.Name)+`"`)
	if err := export.WriteCSV(w, ts); err != nil {
		s.log.Error().Err(err).Str("indicator", spec.Name).Msg("Failed to write CSV")
	}
}

// handleCacheClear drops every cached entry. Backs the manual refresh button.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if err := s.indicators.ClearCache(); err != nil {
		s.log.Error().Err(err).Msg("Failed to clear cache")
		s.writeError(w, http.StatusInternalServerError, "failed to clear cache")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func toSeriesPoints(ts domain.TimeSeries) []seriesPoint {
	points := make([]seriesPoint, 0, ts.Len())
	for _, p := range ts.Points {
		points = append(points, seriesPoint{
			Date:  p.Date.Format("2006-01-02"),
			Value: p.Value,
		})
	}
	return points
}
