// Package registry holds the fixed set of indicators served by the dashboard.
package registry

import "github.com/guiajf/dashboard-indicadores/internal/domain"

const (
	colorRate  = "#FF6B6B" // rates and inflation: filled warm area
	colorPrice = "#1E88E5" // price levels: plain cold line
)

// specs is the reference deployment: one B3 index from the market feed and
// five macroeconomic series from the BCB SGS feed. Order is presentation order.
var specs = []domain.IndicatorSpec{
	{
		Name:        "Ibovespa",
		Kind:        domain.SourceMarket,
		Ticker:      "^BVSP",
		Unit:        "Pontos",
		Description: "Principal indicador do desempenho médio das cotações das ações negociadas na B3.",
		ChartColor:  colorPrice,
	},
	{
		Name:        "PIB Total",
		Kind:        domain.SourceStatistical,
		SeriesCode:  4380,
		Unit:        "R$ milhões",
		Description: "Produto Interno Bruto - soma de todos os bens e serviços finais produzidos.",
		ChartColor:  colorPrice,
	},
	{
		Name:        "Taxa Selic",
		Kind:        domain.SourceStatistical,
		SeriesCode:  4189,
		Unit:        "% ao ano",
		Description: "Taxa básica de juros da economia brasileira, definida pelo COPOM.",
		ChartColor:  colorRate,
		ChartFill:   true,
	},
	{
		Name:        "IPCA Mensal",
		Kind:        domain.SourceStatistical,
		SeriesCode:  433,
		Unit:        "%",
		Description: "Índice Nacional de Preços ao Consumidor Amplo - inflação oficial do Brasil.",
		ChartColor:  colorRate,
		ChartFill:   true,
	},
	{
		Name:        "Câmbio USD/BRL",
		Kind:        domain.SourceStatistical,
		SeriesCode:  3696,
		Unit:        "R$",
		Description: "Taxa de câmbio dólar americano/real brasileiro.",
		ChartColor:  colorPrice,
	},
	{
		Name:        "Taxa de Desemprego",
		Kind:        domain.SourceStatistical,
		SeriesCode:  24369,
		Unit:        "%",
		Description: "Porcentagem da população economicamente ativa que está desempregada.",
		ChartColor:  colorRate,
		ChartFill:   true,
	},
}

// Registry resolves indicator names to their specs.
type Registry struct {
	byName map[string]domain.IndicatorSpec
	order  []domain.IndicatorSpec
}

// New builds the registry from the reference indicator set.
func New() *Registry {
	r := &Registry{byName: make(map[string]domain.IndicatorSpec, len(specs))}
	for _, s := range specs {
		r.byName[s.Name] = s
		r.order = append(r.order, s)
	}
	return r
}

// Get returns the spec for name.
func (r *Registry) Get(name string) (domain.IndicatorSpec, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// List returns all specs in presentation order.
func (r *Registry) List() []domain.IndicatorSpec {
	out := make([]domain.IndicatorSpec, len(r.order))
	copy(out, r.order)
	return out
}
