package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog"
)

// metrics instruments a counting run: how many ballots were accepted or
// rejected, and how long each method's tally took.
type metrics struct {
	ballotsParsed   prometheus.Counter
	ballotsRejected *prometheus.CounterVec
	tallyDuration   *prometheus.HistogramVec
}

func newMetrics() *metrics {
	return &metrics{
		ballotsParsed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tallystick_ballots_parsed_total",
			Help: "Total number of ballots parsed and accepted.",
		}),
		ballotsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tallystick_ballots_rejected_total",
			Help: "Total number of ballots rejected, by reason.",
		}, []string{"reason"}),
		tallyDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tallystick_tally_duration_seconds",
			Help:    "Time spent computing each method's result.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *metrics) rejected(reason string) {
	m.ballotsRejected.WithLabelValues(reason).Inc()
}

func (m *metrics) observeTally(method string, d time.Duration) {
	m.tallyDuration.WithLabelValues(method).Observe(d.Seconds())
}

// serveMetrics exposes the Prometheus registry on addr for long batch
// runs.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			klog.Errorf("metrics server: %v", err)
		}
	}()
}
