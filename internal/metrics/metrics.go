// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"plan-engine/internal/model"
)

// Metrics is a set of collectors bound to one registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	quotes            *prometheus.CounterVec
	invalidSelections *prometheus.CounterVec
	catalogPriceCount prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plan_engine_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plan_engine_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"route"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plan_engine_quotes_total",
			Help: "Price quotes by outcome.",
		}, []string{"status"}),
		invalidSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plan_engine_invalid_selections_total",
			Help: "Rejected selections by reason code.",
		}, []string{"reason"}),
		catalogPriceCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_engine_catalog_prices",
			Help: "Base prices in the loaded catalog.",
		}),
	}
	m.Registry.MustRegister(
		m.requests,
		m.duration,
		m.quotes,
		m.invalidSelections,
		m.catalogPriceCount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveQuote(q model.Quote) {
	m.quotes.WithLabelValues(string(q.Status)).Inc()
	if q.Status == model.QuoteInvalid {
		m.invalidSelections.WithLabelValues(string(q.ReasonCode)).Inc()
	}
}

func (m *Metrics) ObserveValidation(r model.ValidationResult) {
	if !r.Valid {
		m.invalidSelections.WithLabelValues(string(r.ReasonCode)).Inc()
	}
}

func (m *Metrics) SetCatalogPrices(n int) {
	m.catalogPriceCount.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
