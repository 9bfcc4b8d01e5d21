package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics collects the service counters. Each Server owns a registry so
// instances never collide.
type metrics struct {
	reg           *prometheus.Registry
	extractions   *prometheus.CounterVec
	compileErrors *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "take",
			Subsystem: "server",
			Name:      "extractions_total",
			Help:      "Extraction requests by outcome.",
		}, []string{"outcome"}),
		compileErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "take",
			Subsystem: "server",
			Name:      "compile_errors_total",
			Help:      "Template compile faults by kind.",
		}, []string{"kind"}),
	}
	m.reg.MustRegister(m.extractions)
	m.reg.MustRegister(m.compileErrors)
	return m
}
