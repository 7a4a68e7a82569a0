// Package metrics expõe métricas Prometheus das extrações e das contas.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de extração
const (
	ResultOK              = "ok"
	ResultFetchError      = "fetch_error"
	ResultElementNotFound = "element_not_found"
	ResultPriceNotFound   = "price_not_found"
	ResultError           = "error"
)

// Metrics agrupa os coletores da aplicação
type Metrics struct {
	// Extractions conta extrações por loja e resultado
	Extractions *prometheus.CounterVec

	// FetchDuration mede o tempo de download das páginas
	FetchDuration prometheus.Histogram

	// AccountOperations conta registros e logins por resultado
	AccountOperations *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registra os coletores no registry informado
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_precos_extractions_total",
			Help: "Total de extrações de preço por loja e resultado.",
		}, []string{"store", "result"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bot_precos_fetch_duration_seconds",
			Help:    "Duração do download das páginas de produto.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		AccountOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_precos_account_operations_total",
			Help: "Total de operações de conta por tipo e resultado.",
		}, []string{"operation", "result"}),
		gatherer: reg,
	}
}

// RecordExtraction registra o resultado de uma extração
func (m *Metrics) RecordExtraction(store, result string) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(store, result).Inc()
}

// ObserveFetch registra a duração de um download
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// RecordAccount registra o resultado de uma operação de conta
func (m *Metrics) RecordAccount(operation, result string) {
	if m == nil {
		return
	}
	m.AccountOperations.WithLabelValues(operation, result).Inc()
}

// Handler retorna o handler HTTP de exposição das métricas
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
