package manager

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "argmap",
			Subsystem: "models",
			Name:      "loads_total",
			Help:      "Model construction attempts by slot and result.",
		},
		[]string{"slot", "result"},
	)
	loadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "argmap",
			Subsystem: "models",
			Name:      "load_duration_seconds",
			Help:      "Wall time spent constructing a model.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"slot"},
	)
	slotLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "argmap",
			Subsystem: "models",
			Name:      "loaded",
			Help:      "1 when the slot holds a model.",
		},
		[]string{"slot"},
	)
	accelFreeBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "argmap",
			Subsystem: "accel",
			Name:      "free_bytes",
			Help:      "Free accelerator memory at the last query.",
		},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal, loadDuration, slotLoaded, accelFreeBytes)
}

func observeLoad(s SlotName, result string, d time.Duration) {
	loadsTotal.WithLabelValues(string(s), result).Inc()
	loadDuration.WithLabelValues(string(s)).Observe(d.Seconds())
}
