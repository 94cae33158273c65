package main

import (
	"strings"

	"github.com/criyle/coderunner/language"
	"github.com/criyle/coderunner/worker"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "coderunner"
)

var (
	// 1ms -> 10s
	timeBuckets = []float64{
		0.001, 0.002, 0.005, 0.008, 0.010, 0.025, 0.050, 0.075, 0.1, 0.2,
		0.4, 0.6, 0.8, 1.0, 1.5, 2, 5, 10,
	}

	// 4k (1<<12) -> 4g (1<<32)
	memoryBucket = prometheus.ExponentialBuckets(1<<12, 2, 21)

	execCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "exec_total",
		Help:      "Number of finished submissions",
	}, []string{"status", "language"})

	execTimeHist = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "time_seconds",
		Help:      "Histogram for the running time",
		Buckets:   timeBuckets,
	}, []string{"status", "language"})

	execMemHist = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "memory_bytes",
		Help:      "Histgram for the memory",
		Buckets:   memoryBucket,
	}, []string{"status", "language"})
)

func init() {
	prometheus.MustRegister(execCount, execTimeHist, execMemHist)
}

// newExecObserver returns the worker observer. Language names outside the
// registry share a single label value.
func newExecObserver(infos []language.Info) func(worker.Response) {
	known := make(map[string]bool, len(infos))
	for _, l := range infos {
		known[l.Name] = true
	}
	return func(res worker.Response) {
		lang := strings.ToLower(strings.TrimSpace(res.Language))
		if !known[lang] {
			lang = "unknown"
		}
		execObserve(res.Outcome.Status.String(), lang, res)
	}
}

func execObserve(status, lang string, res worker.Response) {
	execCount.WithLabelValues(status, lang).Inc()
	execTimeHist.WithLabelValues(status, lang).Observe(res.Outcome.Time.Seconds())
	execMemHist.WithLabelValues(status, lang).Observe(float64(res.Outcome.Memory))
}
