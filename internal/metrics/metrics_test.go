package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot-precos/internal/metrics"
)

func TestRecordExtraction(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordExtraction("amazon", metrics.ResultOK)
	m.RecordExtraction("amazon", metrics.ResultOK)
	m.RecordExtraction("amazon", metrics.ResultPriceNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Extractions.WithLabelValues("amazon", metrics.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("amazon", metrics.ResultPriceNotFound)))
}

func TestRecordAccount(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.RecordAccount("register", "ok")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountOperations.WithLabelValues("register", "ok")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.RecordExtraction("amazon", metrics.ResultOK)
		m.ObserveFetch(time.Second)
		m.RecordAccount("login", "ok")
	})
}

func TestHandler(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.ObserveFetch(200 * time.Millisecond)
	m.RecordExtraction("johnlewis", metrics.ResultOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "bot_precos_fetch_duration_seconds_count 1")
	assert.Contains(t, string(body), `bot_precos_extractions_total{result="ok",store="johnlewis"} 1`)
}
