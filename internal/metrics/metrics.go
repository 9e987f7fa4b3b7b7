// Package metrics exposes Prometheus counters for tax calculations on a private registry.
package metrics

import (
	"net/http"

	"fjacquet/taxcalc/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taxcalc"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

const unknownLabel = "unknown"

// Metrics records calculation counts and tax amounts. A nil *Metrics is a no-op.
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	taxAmount    *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Number of tax calculations by category, period and outcome.",
		}, []string{"category", "period", "outcome"}),
		taxAmount: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tax_amount",
			Help:      "Tax computed per successful calculation.",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 7),
		}, []string{"category"}),
	}

	m.registry.MustRegister(
		m.calculations,
		m.taxAmount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records one calculation. err is the error returned by the calculator, if any.
func (m *Metrics) Observe(input models.CalculationInput, result models.CalculationResult, err error) {
	if m == nil {
		return
	}

	category := unknownLabel
	if input.Category.IsValid() {
		category = string(input.Category)
	}
	period := unknownLabel
	if input.Period == models.Annual || input.Period == models.Monthly {
		period = string(input.Period)
	}

	if err != nil {
		m.calculations.WithLabelValues(category, period, OutcomeError).Inc()
		return
	}
	m.calculations.WithLabelValues(category, period, OutcomeSuccess).Inc()
	m.taxAmount.WithLabelValues(category).Observe(result.TaxAmount.InexactFloat64())
}
