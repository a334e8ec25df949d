package orchestrator

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentd",
			Subsystem: "orchestrator",
			Name:      "loads_total",
			Help:      "Total number of successful backend loads",
		},
	)

	loadFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agentd",
			Subsystem: "orchestrator",
			Name:      "load_failures_total",
			Help:      "Total number of failed backend loads",
		},
	)

	evictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agentd",
			Subsystem: "orchestrator",
			Name:      "evictions_total",
			Help:      "Total backend evictions by reason",
		},
		[]string{"reason"},
	)

	readyBackends = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agentd",
			Subsystem: "orchestrator",
			Name:      "ready_backends",
			Help:      "Number of backends currently resident",
		},
	)

	memoryUsedBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agentd",
			Subsystem: "orchestrator",
			Name:      "memory_used_bytes",
			Help:      "Used host memory as of the last monitor sample",
		},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal, loadFailuresTotal, evictionsTotal, readyBackends, memoryUsedBytes)
}
