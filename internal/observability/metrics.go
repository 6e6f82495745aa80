// Package observability holds the prometheus collectors for the donation
// client. Collectors are registered lazily on first use.
package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DonationMetrics counts lifecycle transitions and attempt outcomes.
type DonationMetrics struct {
	transitions *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	duration    prometheus.Histogram
}

// ReadMetrics tracks read-only chain calls against the vault.
type ReadMetrics struct {
	reads     *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	cacheHits *prometheus.CounterVec
}

var (
	donationOnce sync.Once
	donationReg  *DonationMetrics

	readOnce sync.Once
	readReg  *ReadMetrics
)

// Donation returns the process-wide donation metrics.
func Donation() *DonationMetrics {
	donationOnce.Do(func() {
		donationReg = &DonationMetrics{
			transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "xcd",
				Subsystem: "donation",
				Name:      "transitions_total",
				Help:      "Lifecycle transitions segmented by destination state.",
			}, []string{"state"}),
			outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "xcd",
				Subsystem: "donation",
				Name:      "attempts_total",
				Help:      "Finished donation attempts segmented by outcome and error kind.",
			}, []string{"outcome", "kind"}),
			duration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Namespace: "xcd",
				Subsystem: "donation",
				Name:      "attempt_duration_seconds",
				Help:      "Wall time from claim to terminal state.",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			}),
		}
		prometheus.MustRegister(donationReg.transitions, donationReg.outcomes, donationReg.duration)
	})
	return donationReg
}

// Transition records entry into state.
func (m *DonationMetrics) Transition(state string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state).Inc()
}

// Finished records a terminal attempt. kind is empty on success.
func (m *DonationMetrics) Finished(outcome, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "none"
	}
	m.outcomes.WithLabelValues(outcome, kind).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Reads returns the process-wide read metrics.
func Reads() *ReadMetrics {
	readOnce.Do(func() {
		readReg = &ReadMetrics{
			reads: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "xcd",
				Subsystem: "reads",
				Name:      "requests_total",
				Help:      "Vault reads segmented by method and outcome.",
			}, []string{"method", "outcome"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "xcd",
				Subsystem: "reads",
				Name:      "duration_seconds",
				Help:      "Latency of vault eth_call round trips.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method"}),
			cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "xcd",
				Subsystem: "reads",
				Name:      "cache_total",
				Help:      "Read cache lookups segmented by result.",
			}, []string{"result"}),
		}
		prometheus.MustRegister(readReg.reads, readReg.latency, readReg.cacheHits)
	})
	return readReg
}

// Observe records one read.
func (m *ReadMetrics) Observe(method string, ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "unavailable"
	}
	m.reads.WithLabelValues(method, outcome).Inc()
	m.latency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Cache records a cache lookup result: "hit", "miss" or "error".
func (m *ReadMetrics) Cache(result string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(result).Inc()
}
