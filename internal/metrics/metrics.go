package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectionsActive counts currently registered websocket clients.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codesync_connections_active",
		Help: "Number of connected clients.",
	})

	// RoomsActive counts live rooms in the registry.
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codesync_rooms_active",
		Help: "Number of live rooms.",
	})

	// CommandsTotal counts processed client commands by kind.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codesync_commands_total",
		Help: "Processed client commands.",
	}, []string{"kind"})

	// ExecRequestsTotal counts execution proxy calls by outcome.
	ExecRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codesync_exec_requests_total",
		Help: "Execution service calls.",
	}, []string{"outcome"})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
