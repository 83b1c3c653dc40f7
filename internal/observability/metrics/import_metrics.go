package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	ImportErrorTypeDeadlineExceeded = "deadline_exceeded"
	ImportErrorTypeDB               = "db"
	ImportErrorTypeValidation       = "validation"
	ImportErrorTypeUnknown          = "unknown"
)

const (
	ImportRowReasonParseError   = "parse_error"
	ImportRowReasonBadTimestamp = "bad_timestamp"
	ImportRowReasonBadValue     = "bad_value"
	ImportRowReasonMissingField = "missing_field"
)

// ImportMetrics captures CSV meter reading import health signals.
type ImportMetrics struct {
	jobRuns      *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
	jobErrors    *prometheus.CounterVec
	rowsAccepted prometheus.Counter
	rowsRejected *prometheus.CounterVec
	batchSize    prometheus.Histogram
}

var (
	importMetricsOnce sync.Once
	importMetrics     *ImportMetrics
)

// Import returns the singleton import metrics registry.
func Import() *ImportMetrics {
	return ImportWithConfig(Config{})
}

// ImportWithConfig returns the singleton import metrics registry using config labels.
func ImportWithConfig(cfg Config) *ImportMetrics {
	importMetricsOnce.Do(func() {
		importMetrics = newImportMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return importMetrics
}

// ResetImportMetricsForTest resets the import metrics singleton for tests.
func ResetImportMetricsForTest() {
	importMetricsOnce = sync.Once{}
	importMetrics = nil
}

func newImportMetrics(registerer prometheus.Registerer, cfg Config) *ImportMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "enervue"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "enervue_import_job_runs_total",
		Help:        "Meter reading import jobs by terminal status.",
		ConstLabels: constLabels,
	}, []string{"status"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "enervue_import_job_duration_seconds",
		Help:        "Meter reading import latency from upload to commit.",
		Buckets:     []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		ConstLabels: constLabels,
	}, []string{"status"})
	jobErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "enervue_import_job_errors_total",
		Help:        "Meter reading import failures by low-cardinality type.",
		ConstLabels: constLabels,
	}, []string{"error_type"})
	rowsAccepted := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "enervue_import_rows_accepted_total",
		Help:        "CSV rows parsed and persisted as meter readings.",
		ConstLabels: constLabels,
	})
	rowsRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "enervue_import_rows_rejected_total",
		Help:        "CSV rows skipped during import by reason.",
		ConstLabels: constLabels,
	}, []string{"reason"})
	batchSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "enervue_import_batch_rows",
		Help:        "Accepted rows per import batch.",
		Buckets:     []float64{1, 10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000},
		ConstLabels: constLabels,
	})

	registerer.MustRegister(
		jobRuns,
		jobDuration,
		jobErrors,
		rowsAccepted,
		rowsRejected,
		batchSize,
	)

	return &ImportMetrics{
		jobRuns:      jobRuns,
		jobDuration:  jobDuration,
		jobErrors:    jobErrors,
		rowsAccepted: rowsAccepted,
		rowsRejected: rowsRejected,
		batchSize:    batchSize,
	}
}

// IncJobRun increments the run counter for an import job outcome.
func (m *ImportMetrics) IncJobRun(status string) {
	if m == nil || m.jobRuns == nil {
		return
	}
	m.jobRuns.WithLabelValues(status).Inc()
}

// ObserveJobDuration records import job latency in seconds.
func (m *ImportMetrics) ObserveJobDuration(status string, duration time.Duration) {
	if m == nil || m.jobDuration == nil {
		return
	}
	m.jobDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// IncJobError increments the import error counter with classification.
func (m *ImportMetrics) IncJobError(err error) {
	if m == nil || m.jobErrors == nil || err == nil {
		return
	}
	m.jobErrors.WithLabelValues(ClassifyImportErrorType(err)).Inc()
}

// AddRowsAccepted adds persisted row counts for an import batch.
func (m *ImportMetrics) AddRowsAccepted(count int) {
	if m == nil || m.rowsAccepted == nil || count <= 0 {
		return
	}
	m.rowsAccepted.Add(float64(count))
	if m.batchSize != nil {
		m.batchSize.Observe(float64(count))
	}
}

// AddRowsRejected adds skipped row counts by reason.
func (m *ImportMetrics) AddRowsRejected(reason string, count int) {
	if m == nil || m.rowsRejected == nil || count <= 0 {
		return
	}
	m.rowsRejected.WithLabelValues(reason).Add(float64(count))
}

// ClassifyImportErrorType maps import errors to low-cardinality types.
func ClassifyImportErrorType(err error) string {
	if err == nil {
		return ImportErrorTypeUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ImportErrorTypeDeadlineExceeded
	}
	if isDBError(err) {
		return ImportErrorTypeDB
	}
	return ImportErrorTypeValidation
}

func isDBError(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	if errors.Is(err, gorm.ErrInvalidDB) ||
		errors.Is(err, gorm.ErrInvalidTransaction) ||
		errors.Is(err, gorm.ErrInvalidData) ||
		errors.Is(err, gorm.ErrMissingWhereClause) ||
		errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}
