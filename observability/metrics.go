package observability

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type derivationMetrics struct {
	derivations *prometheus.CounterVec
	entries     prometheus.Histogram
}

var (
	derivationMetricsOnce sync.Once
	derivationRegistry    *derivationMetrics
)

// Derivations returns the lazily-initialised registry tracking address
// derivations and snapshot exports.
func Derivations() *derivationMetrics {
	derivationMetricsOnce.Do(func() {
		derivationRegistry = &derivationMetrics{
			derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ownable",
				Subsystem: "address",
				Name:      "derivations_total",
				Help:      "Count of address derivations segmented by scheme and outcome.",
			}, []string{"scheme", "outcome"}),
			entries: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: "ownable",
				Subsystem: "snapshot",
				Name:      "entries",
				Help:      "Number of key-value entries per exported state dump.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			}),
		}
		prometheus.MustRegister(
			derivationRegistry.derivations,
			derivationRegistry.entries,
		)
	})
	return derivationRegistry
}

// ObserveDerivation records the outcome of a derivation. Scheme should be a
// stable label such as "eip155" or "lto".
func (m *derivationMetrics) ObserveDerivation(scheme string, err error) {
	if m == nil {
		return
	}
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	if scheme == "" {
		scheme = "unknown"
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.derivations.WithLabelValues(scheme, outcome).Inc()
}

// ObserveSnapshot records the size of an exported dump.
func (m *derivationMetrics) ObserveSnapshot(entries int) {
	if m == nil {
		return
	}
	m.entries.Observe(float64(entries))
}
