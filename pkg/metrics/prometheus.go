// Package metrics provides Prometheus metrics for the performance pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion outcomes used as label values.
const (
	OutcomeOK     = "ok"
	OutcomeParse  = "parse_error"
	OutcomeSchema = "schema_error"
	OutcomeRead   = "read_error"
)

// Manager manages all Prometheus metrics of the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	filesIngested   *prometheus.CounterVec
	recordsIngested prometheus.Counter
	ingestDuration  prometheus.Histogram

	// Data entry
	validationErrors *prometheus.CounterVec

	// Views and exports
	filteredRecords prometheus.Gauge
	exports         *prometheus.CounterVec
	renderErrors    prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "perfdash",
		subsystem:        "pipeline",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesIngested = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_ingested_total",
		Help:      "Input files processed, by outcome",
	}, []string{"outcome"})

	m.recordsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_ingested_total",
		Help:      "Records admitted from successfully ingested files",
	})

	m.ingestDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_duration_milliseconds",
		Help:      "Time to read and parse a batch of input files",
		Buckets:   m.histogramBuckets,
	})

	m.validationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_errors_total",
		Help:      "Rejected records, by offending field",
	}, []string{"field"})

	m.filteredRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "filtered_records",
		Help:      "Records in the current filtered view",
	})

	m.exports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Export files written, by kind",
	}, []string{"kind"})

	m.renderErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_errors_total",
		Help:      "View computations that failed and kept the previous view",
	})
}

// RecordFileIngested counts one processed file.
func (m *Manager) RecordFileIngested(outcome string) {
	m.filesIngested.WithLabelValues(outcome).Inc()
}

// RecordRecordsIngested adds admitted records.
func (m *Manager) RecordRecordsIngested(n int) {
	m.recordsIngested.Add(float64(n))
}

// RecordIngestDuration observes a batch ingestion time.
func (m *Manager) RecordIngestDuration(ms float64) {
	m.ingestDuration.Observe(ms)
}

// RecordValidationError counts a rejected record.
func (m *Manager) RecordValidationError(field string) {
	m.validationErrors.WithLabelValues(field).Inc()
}

// UpdateFilteredRecords sets the filtered view size.
func (m *Manager) UpdateFilteredRecords(n int) {
	m.filteredRecords.Set(float64(n))
}

// RecordExport counts a written export.
func (m *Manager) RecordExport(kind string) {
	m.exports.WithLabelValues(kind).Inc()
}

// RecordRenderError counts a failed view computation.
func (m *Manager) RecordRenderError() {
	m.renderErrors.Inc()
}

// Global convenience functions.

// RecordFileIngested counts one processed file.
func RecordFileIngested(outcome string) { globalManager.RecordFileIngested(outcome) }

// RecordRecordsIngested adds admitted records.
func RecordRecordsIngested(n int) { globalManager.RecordRecordsIngested(n) }

// RecordIngestDuration observes a batch ingestion time.
func RecordIngestDuration(ms float64) { globalManager.RecordIngestDuration(ms) }

// RecordValidationError counts a rejected record.
func RecordValidationError(field string) { globalManager.RecordValidationError(field) }

// UpdateFilteredRecords sets the filtered view size.
func UpdateFilteredRecords(n int) { globalManager.UpdateFilteredRecords(n) }

// RecordExport counts a written export.
func RecordExport(kind string) { globalManager.RecordExport(kind) }

// RecordRenderError counts a failed view computation.
func RecordRenderError() { globalManager.RecordRenderError() }

// GetRegistry returns the registry backing the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global registry in the text exposition format,
// suitable for a node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
