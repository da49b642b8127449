package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "adpipe_cache_ops_total",
		Help: "Cache lookups by key and outcome (hit, miss, error).",
	},
	[]string{"key", "outcome"},
)
