package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "finbuddy_"

	ResultSuccess = "success"
	ResultError   = "error"
	ResultInvalid = "invalid"
)

var (
	registerOnce sync.Once

	projectionsTotal  *prometheus.CounterVec
	projectionLatency *prometheus.HistogramVec

	narrativeTotal   *prometheus.CounterVec
	narrativeLatency *prometheus.HistogramVec

	exportTotal *prometheus.CounterVec

	historyEntries prometheus.Gauge
)

// Init registers the application metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		projectionsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "projections_total",
				Help: "Total projection requests by result",
			},
			[]string{"result"},
		)
		projectionLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "projection_latency_seconds",
				Help:    "Projection latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"result"},
		)

		narrativeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "narrative_requests_total",
				Help: "Total narrative requests by provider and result",
			},
			[]string{"provider", "result"},
		)
		narrativeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "narrative_latency_seconds",
				Help:    "Narrative provider latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_exports_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)

		historyEntries = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "history_entries",
				Help: "Number of entries in the in-memory history log",
			},
		)

		prometheus.MustRegister(
			projectionsTotal,
			projectionLatency,
			narrativeTotal,
			narrativeLatency,
			exportTotal,
			historyEntries,
		)
	})
}

// ObserveProjection records projection duration and result.
func ObserveProjection(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if projectionsTotal != nil {
		projectionsTotal.WithLabelValues(result).Inc()
	}
	if projectionLatency != nil {
		projectionLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveNarrative records a narrative call.
func ObserveNarrative(provider, result string, duration time.Duration) {
	if provider == "" {
		provider = "none"
	}
	if result == "" {
		result = ResultSuccess
	}
	if narrativeTotal != nil {
		narrativeTotal.WithLabelValues(provider, result).Inc()
	}
	if narrativeLatency != nil {
		narrativeLatency.WithLabelValues(provider, result).Observe(duration.Seconds())
	}
}

// IncExport increments the export counter.
func IncExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
}

// SetHistoryEntries sets the current history size.
func SetHistoryEntries(n int) {
	if historyEntries != nil {
		historyEntries.Set(float64(n))
	}
}
