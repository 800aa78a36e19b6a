package lists

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	persistEnqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lists",
			Name:      "persist_enqueued_total",
			Help:      "Persistence jobs accepted into the shard executor.",
		},
		[]string{"shard"},
	)

	persistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lists",
			Name:      "persist_failures_total",
			Help:      "Persistence jobs that failed terminally or could not be enqueued.",
		},
	)

	fetchFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lists",
			Name:      "fetch_failures_total",
			Help:      "Initial list fetches that ended in error.",
		},
	)
)
