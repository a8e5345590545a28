// Package metrics provides Prometheus metrics for workbook loads, queries
// and HTTP requests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query kinds.
const (
	KindVessel = "vessel"
	KindDevice = "device"
	KindTop    = "top"
)

// Query results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultNoData   = "no_data"
	ResultError    = "error"
	ResultEmpty    = "empty"
)

// Metrics records service metrics. A nil *Metrics records nothing.
type Metrics struct {
	WorkbookLoads        *prometheus.CounterVec
	WorkbookLoadDuration prometheus.Histogram
	TrackerRows          prometheus.Gauge
	Queries              *prometheus.CounterVec
	QueryDuration        *prometheus.HistogramVec
	HTTPRequests         *prometheus.CounterVec
}

// New registers the service metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WorkbookLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sustainabos_workbook_loads_total",
				Help: "Total number of workbook loads",
			},
			[]string{"result"},
		),
		WorkbookLoadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sustainabos_workbook_load_duration_seconds",
				Help:    "Time taken to read and parse the workbook",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		TrackerRows: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sustainabos_tracker_rows",
				Help: "Number of tracker rows in the current snapshot",
			},
		),
		Queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sustainabos_queries_total",
				Help: "Total number of summary queries",
			},
			[]string{"kind", "result"},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sustainabos_query_duration_seconds",
				Help:    "Duration of summary queries",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
			},
			[]string{"kind"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sustainabos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "code"},
		),
	}
}

// RecordLoad records a workbook load.
func (m *Metrics) RecordLoad(result string, duration time.Duration, rows int) {
	if m == nil {
		return
	}
	m.WorkbookLoads.WithLabelValues(result).Inc()
	m.WorkbookLoadDuration.Observe(duration.Seconds())
	m.TrackerRows.Set(float64(rows))
}

// RecordQuery records a summary query.
func (m *Metrics) RecordQuery(kind, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(kind, result).Inc()
	m.QueryDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordRequest records an HTTP request.
func (m *Metrics) RecordRequest(route, code string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, code).Inc()
}
