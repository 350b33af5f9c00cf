package fanout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plaza_fanout_jobs_total",
			Help: "Fan-out jobs by outcome",
		},
		[]string{"job", "outcome"},
	)

	writesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plaza_fanout_writes_total",
			Help: "Best-effort side-effect writes by target and outcome",
		},
		[]string{"target", "outcome"},
	)
)
