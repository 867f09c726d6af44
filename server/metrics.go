package server

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the Prometheus collectors GET /metrics serves, scoped
// per Server instance so tests can spin up independent registries
// rather than colliding on prometheus' global default one.
type metrics struct {
	commandsTotal   *prometheus.CounterVec
	commandErrors   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridbase_commands_total",
			Help: "Total number of commands executed, by command name.",
		}, []string{"command"}),
		commandErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridbase_command_errors_total",
			Help: "Total number of commands that returned an error, by command name and error kind.",
		}, []string{"command", "kind"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridbase_command_duration_seconds",
			Help:    "Command execution latency in seconds, by command name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
	}
	reg.MustRegister(m.commandsTotal, m.commandErrors, m.commandDuration)
	return m
}
