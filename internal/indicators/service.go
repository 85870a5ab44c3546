// Package indicators implements the normalizer: it resolves an indicator
// name against the registry, dispatches to the right provider client and
// reduces whatever came back to a uniform single-column time series.
package indicators

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guiajf/dashboard-indicadores/internal/cache"
	"github.com/guiajf/dashboard-indicadores/internal/clients/yahoo"
	"github.com/guiajf/dashboard-indicadores/internal/domain"
	"github.com/guiajf/dashboard-indicadores/internal/registry"
)

// MarketClient is the equities/index price feed.
type MarketClient interface {
	DailyHistory(ctx context.Context, ticker string, r domain.DateRange) (yahoo.Table, error)
}

// StatisticalClient is the central-bank statistical series feed.
type StatisticalClient interface {
	Series(ctx context.Context, code int, r domain.DateRange) ([]domain.Point, error)
}

// Service is the indicator normalizer. Both the raw market fetch and the
// normalized per-indicator result are cached, on independent TTLs: market
// data moves faster than the composite it feeds.
type Service struct {
	registry  *registry.Registry
	market    MarketClient
	stats     StatisticalClient
	cache     *cache.Cache
	marketTTL time.Duration
	seriesTTL time.Duration
	log       zerolog.Logger
}

// Config collects the service dependencies.
type Config struct {
	Registry  *registry.Registry
	Market    MarketClient
	Stats     StatisticalClient
	Cache     *cache.Cache
	MarketTTL time.Duration
	SeriesTTL time.Duration
	Log       zerolog.Logger
}

// New creates the normalizer service.
func New(cfg Config) *Service {
	return &Service{
		registry:  cfg.Registry,
		market:    cfg.Market,
		stats:     cfg.Stats,
		cache:     cfg.Cache,
		marketTTL: cfg.MarketTTL,
		seriesTTL: cfg.SeriesTTL,
		log:       cfg.Log.With().Str("service", "indicators").Logger(),
	}
}

// Fetch returns the normalized series for the named indicator within r.
// Unknown names fail with domain.ErrUnknownIndicator. Provider failures are
// absorbed here: the caller always gets a (possibly empty) TimeSeries, never
// a transport error.
func (s *Service) Fetch(ctx context.Context, name string, r domain.DateRange) (domain.TimeSeries, error) {
	spec, ok := s.registry.Get(name)
	if !ok {
		return domain.TimeSeries{}, fmt.Errorf("%w: %s", domain.ErrUnknownIndicator, name)
	}

	key := seriesKey(name, r)
	var ts domain.TimeSeries
	err := s.cache.GetOrFetch(key, s.seriesTTL, &ts, func() (interface{}, error) {
		return s.build(ctx, spec, r), nil
	})
	if err != nil {
		// Cache plumbing failed; fall back to a direct build so the
		// request still gets data.
		s.log.Error().Err(err).Str("indicator", name).Msg("Cache failure, building directly")
		return s.build(ctx, spec, r), nil
	}
	return ts, nil
}

// build fetches and normalizes one indicator, absorbing provider errors into
// an empty series.
func (s *Service) build(ctx context.Context, spec domain.IndicatorSpec, r domain.DateRange) domain.TimeSeries {
	fetchID := uuid.New().String()
	log := s.log.With().
		Str("indicator", spec.Name).
		Str("fetch_id", fetchID).
		Logger()

	var points []domain.Point
	switch spec.Kind {
	case domain.SourceMarket:
		points = s.fetchMarket(ctx, log, spec, r)
	case domain.SourceStatistical:
		points = s.fetchStatistical(ctx, log, spec, r)
	}

	ts := domain.NewTimeSeries(spec.Name, points, r)
	if ts.Empty() {
		log.Warn().Msg("No observations in range")
	} else {
		log.Info().Int("rows", ts.Len()).Msg("Normalized series")
	}
	return ts
}

// fetchMarket pulls daily bars (cached on the shorter market TTL) and applies
// the ordered column-selection policy.
func (s *Service) fetchMarket(ctx context.Context, log zerolog.Logger, spec domain.IndicatorSpec, r domain.DateRange) []domain.Point {
	var table yahoo.Table
	key := marketKey(spec.Ticker, r)
	err := s.cache.GetOrFetch(key, s.marketTTL, &table, func() (interface{}, error) {
		t, err := s.market.DailyHistory(ctx, spec.Ticker, r)
		if err != nil {
			// Transport failures become a cached empty table: a uniform
			// outcome for callers, and no hammering of a failing provider.
			log.Warn().Err(err).Str("ticker", spec.Ticker).Msg("Market fetch failed")
			return yahoo.Table{}, nil
		}
		return t, nil
	})
	if err != nil {
		log.Error().Err(err).Str("ticker", spec.Ticker).Msg("Market cache failure")
		return nil
	}

	if table.Empty() {
		return nil
	}

	col, ok := selectColumn(table)
	if !ok {
		log.Warn().Str("ticker", spec.Ticker).Msg("No usable numeric column in market table")
		return nil
	}
	if col.Name != yahoo.ColumnAdjClose {
		log.Warn().
			Str("ticker", spec.Ticker).
			Str("column", col.Name).
			Msg("Adjusted close unavailable, falling back")
	}

	points := make([]domain.Point, 0, len(table.Dates))
	for i, d := range table.Dates {
		if i < len(col.Values) {
			points = append(points, domain.Point{Date: d, Value: col.Values[i]})
		}
	}
	return points
}

// fetchStatistical pulls one pre-labeled SGS series.
func (s *Service) fetchStatistical(ctx context.Context, log zerolog.Logger, spec domain.IndicatorSpec, r domain.DateRange) []domain.Point {
	points, err := s.stats.Series(ctx, spec.SeriesCode, r)
	if err != nil {
		log.Warn().Err(err).Int("code", spec.SeriesCode).Msg("Statistical fetch failed")
		return nil
	}
	return points
}

// selectColumn applies the ordered pickers to a market table.
func selectColumn(t yahoo.Table) (yahoo.Column, bool) {
	for _, pick := range marketColumnPickers {
		if col, ok := pick(t); ok {
			return col, true
		}
	}
	return yahoo.Column{}, false
}

// ClearCache drops both cache levels at once. Backs the manual refresh
// control.
func (s *Service) ClearCache() error {
	return s.cache.Clear()
}

func seriesKey(name string, r domain.DateRange) string {
	return fmt.Sprintf("series:%s:%s:%s", name,
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

func marketKey(ticker string, r domain.DateRange) string {
	return fmt.Sprintf("market:%s:%s:%s", ticker,
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
