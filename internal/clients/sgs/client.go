// Package sgs is a client for the Banco Central do Brasil SGS API
// (Sistema Gerenciador de Séries Temporais), the statistical series feed
// behind the macroeconomic indicators.
package sgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/guiajf/dashboard-indicadores/internal/domain"
)

// DefaultBaseURL is the public SGS endpoint.
const DefaultBaseURL = "https://api.bcb.gov.br"

// dateLayout is the dd/MM/yyyy format SGS uses for both request parameters
// and response rows.
const dateLayout = "02/01/2006"

// Client fetches numeric series from the SGS API.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates an SGS client. baseURL is normally DefaultBaseURL; tests
// point it at a local server.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "sgs").Logger(),
	}
}

// observation is one SGS row. Values arrive as strings with dot decimals.
type observation struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// Series fetches the series identified by code within r. SGS returns exactly
// one column per code, so there is no selection ambiguity; rows with blank or
// unparseable values are skipped. An empty slice (no error) means the
// provider had no observations for the window.
func (c *Client) Series(ctx context.Context, code int, r domain.DateRange) ([]domain.Point, error) {
	params := url.Values{}
	params.Add("formato", "json")
	params.Add("dataInicial", r.Start.Format(dateLayout))
	params.Add("dataFinal", r.End.Format(dateLayout))

	reqURL := fmt.Sprintf("%s/dados/serie/bcdata.sgs.%d/dados?%s", c.baseURL, code, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch series %d: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Warn().Int("code", code).Msg("Series not found")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("SGS API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var rows []observation
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	points := make([]domain.Point, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if row.Value == "" {
			skipped++
			continue
		}
		value, err := strconv.ParseFloat(row.Value, 64)
		if err != nil {
			skipped++
			continue
		}
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			skipped++
			continue
		}
		points = append(points, domain.Point{Date: date, Value: value})
	}

	if skipped > 0 {
		c.log.Warn().
			Int("code", code).
			Int("skipped", skipped).
			Msg("Skipped unparseable observations")
	}

	c.log.Info().
		Int("code", code).
		Int("rows", len(points)).
		Msg("Fetched series")

	return points, nil
}
