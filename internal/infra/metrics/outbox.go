package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(outboxDispatchTotal) }

var outboxDispatchTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "email_outbox_dispatch_total",
		Help: "Outbox email dispatch attempts by status (sent/failed).",
	},
	[]string{"status"},
)

func IncOutboxDispatch(status string) {
	outboxDispatchTotal.WithLabelValues(norm(status)).Inc()
}
