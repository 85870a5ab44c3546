// Package yahoo is a client for the Yahoo Finance chart API, used to fetch
// daily adjusted price history for market indicators.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
)

// DefaultBaseURL is the public chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily bars from the Yahoo Finance chart API.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a Yahoo Finance client. baseURL is normally
// DefaultBaseURL; tests point it at a local server.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// chartResponse mirrors the v8 chart API payload. Numeric arrays use pointers
// because Yahoo encodes missing observations as JSON null.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// DailyHistory fetches daily bars for ticker within r, adjusted for splits
// and dividends. The returned table carries every numeric column Yahoo
// provided; column selection is the caller's policy. An empty table (no
// error) means the provider had no rows for the window.
func (c *Client) DailyHistory(ctx context.Context, ticker string, r domain.DateRange) (Table, error) {
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("period1", fmt.Sprintf("%d", r.Start.Unix()))
	params.Add("period2", fmt.Sprintf("%d", r.End.Unix()))
	params.Add("events", "div,splits")

	reqURL := c.baseURL + "/v8/finance/chart/" + url.PathEscape(ticker) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Table{}, fmt.Errorf("failed to create request: %w", err)
	}

	// Yahoo rejects requests without a browser-looking User-Agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Table{}, fmt.Errorf("failed to fetch chart data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Table{}, fmt.Errorf("chart API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var result chartResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return Table{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Chart.Error != nil {
		return Table{}, fmt.Errorf("chart API error: %v", result.Chart.Error)
	}

	if len(result.Chart.Result) == 0 {
		c.log.Warn().Str("ticker", ticker).Msg("No chart data returned")
		return Table{}, nil
	}

	chartData := result.Chart.Result[0]
	timestamps := chartData.Timestamp
	if len(timestamps) == 0 || len(chartData.Indicators.Quote) == 0 {
		c.log.Warn().Str("ticker", ticker).Msg("No quote data in response")
		return Table{}, nil
	}

	dates := make([]time.Time, len(timestamps))
	for i, ts := range timestamps {
		dates[i] = time.Unix(ts, 0).In(domain.Brasilia())
	}

	table := Table{Dates: dates}
	quote := chartData.Indicators.Quote[0]
	if len(chartData.Indicators.AdjClose) > 0 {
		table.Columns = append(table.Columns,
			newColumn(ColumnAdjClose, chartData.Indicators.AdjClose[0].AdjClose, len(dates)))
	}
	table.Columns = append(table.Columns,
		newColumn(ColumnClose, quote.Close, len(dates)),
		newColumn(ColumnVolume, quote.Volume, len(dates)))

	c.log.Info().
		Str("ticker", ticker).
		Int("rows", len(dates)).
		Msg("Fetched daily history")

	return table, nil
}

// newColumn converts a pointer slice (nulls allowed) into a fixed-length
// column, padding missing entries with NaN.
func newColumn(name string, values []*float64, rows int) Column {
	col := Column{Name: name, Values: make([]float64, rows)}
	for i := range col.Values {
		if i < len(values) && values[i] != nil {
			col.Values[i] = *values[i]
		} else {
			col.Values[i] = math.NaN()
		}
	}
	return col
}
