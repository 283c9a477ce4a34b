// Package metrics holds the Prometheus collectors for ledger and harvest operations.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StreamStatus = "status"
	StreamYield  = "yield"
	StreamCost   = "cost"

	StepYield  = "yield"
	StepStatus = "status"
	StepCrop   = "crop"
)

type Metrics struct {
	LedgerAppends   *prometheus.CounterVec
	HarvestFailures *prometheus.CounterVec
	StatusCache     *prometheus.CounterVec
	FieldArea       prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		LedgerAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldbook_ledger_appends_total",
			Help: "Appended ledger records by stream",
		}, []string{"stream"}),
		HarvestFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldbook_harvest_step_failures_total",
			Help: "Failed harvest recording steps",
		}, []string{"step"}),
		StatusCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldbook_status_cache_total",
			Help: "Current-status read model lookups by result",
		}, []string{"result"}),
		FieldArea: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fieldbook_field_area_hectares",
			Help:    "Area of created fields",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
	}
	for _, c := range []prometheus.Collector{m.LedgerAppends, m.HarvestFailures, m.StatusCache, m.FieldArea} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) Appended(stream string) {
	if m == nil {
		return
	}
	m.LedgerAppends.WithLabelValues(stream).Inc()
}

func (m *Metrics) HarvestStepFailed(step string) {
	if m == nil {
		return
	}
	m.HarvestFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.StatusCache.WithLabelValues("hit").Inc()
		return
	}
	m.StatusCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) FieldCreated(areaHa float64) {
	if m == nil {
		return
	}
	m.FieldArea.Observe(areaHa)
}
