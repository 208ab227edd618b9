package mlbapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playertracker",
		Name:      "upstream_requests_total",
		Help:      "Requests made to the MLB Stats API by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "playertracker",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of MLB Stats API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	rosterCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playertracker",
		Name:      "roster_cache_lookups_total",
		Help:      "Roster cache lookups by result.",
	}, []string{"result"})
)
