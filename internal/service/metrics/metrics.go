package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "annals"

// Metrics collects counters for a single extraction run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	chunksTotal     *prometheus.CounterVec
	attemptFailures prometheus.Counter
	candidatesTotal prometheus.Counter
	recordsUnique   prometheus.Gauge
	recordsIssues   prometheus.Gauge
	runDuration     prometheus.Gauge
	lastRunTS       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.chunksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chunks_total",
		Help:      "Number of processed chunks by status",
	}, []string{"status"})
	m.attemptFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_attempt_failures_total",
		Help:      "Number of failed completion attempts, retries included",
	})
	m.candidatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidates_total",
		Help:      "Number of record candidates parsed from replies",
	})
	m.recordsUnique = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records_unique",
		Help:      "Number of records left after deduplication",
	})
	m.recordsIssues = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records_with_issues",
		Help:      "Number of unique records that deviate from the record schema",
	})
	m.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last extraction run",
	})
	m.lastRunTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last finished extraction run",
	})

	m.registry.MustRegister(
		m.chunksTotal, m.attemptFailures, m.candidatesTotal,
		m.recordsUnique, m.recordsIssues, m.runDuration, m.lastRunTS,
	)

	// failed=0 must be reported on a clean run too.
	m.chunksTotal.WithLabelValues("ok")
	m.chunksTotal.WithLabelValues("failed")

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveChunk(ok bool, candidates int) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.chunksTotal.WithLabelValues(status).Inc()
	m.candidatesTotal.Add(float64(candidates))
}

// ObserveFailedAttempt matches llm.FailureHook.
func (m *Metrics) ObserveFailedAttempt(_ int, _ error) {
	m.attemptFailures.Inc()
}

func (m *Metrics) ObserveRun(unique, issues int, elapsed time.Duration) {
	m.recordsUnique.Set(float64(unique))
	m.recordsIssues.Set(float64(issues))
	m.runDuration.Set(elapsed.Seconds())
	m.lastRunTS.SetToCurrentTime()
}

// WriteToTextfile stores the metrics in the node-exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics dir: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
