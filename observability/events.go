package observability

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type archiveMetrics struct {
	operations *prometheus.CounterVec
}

var (
	archiveMetricsOnce sync.Once
	archiveRegistry    *archiveMetrics
)

// Archive returns the metrics registry tracking snapshot archive operations.
func Archive() *archiveMetrics {
	archiveMetricsOnce.Do(func() {
		archiveRegistry = &archiveMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ownable",
				Subsystem: "archive",
				Name:      "operations_total",
				Help:      "Count of snapshot archive operations segmented by backend, operation and outcome.",
			}, []string{"backend", "op", "outcome"}),
		}
		prometheus.MustRegister(archiveRegistry.operations)
	})
	return archiveRegistry
}

// RecordOperation increments the counter for op against backend.
func (m *archiveMetrics) RecordOperation(backend, op string, err error) {
	if m == nil {
		return
	}
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = "leveldb"
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(backend, strings.TrimSpace(op), outcome).Inc()
}
