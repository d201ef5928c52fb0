package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal counts handled requests by route pattern and status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "parcels_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "parcels_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"method", "route"},
)

// RateRefreshes counts rate fetches by outcome: ok, unavailable, malformed.
var RateRefreshes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "parcels_rate_refreshes_total",
		Help: "Total number of USD rate fetches by outcome",
	},
	[]string{"outcome"},
)

var RateCacheHits = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "parcels_rate_cache_hits_total",
		Help: "Total number of USD rate cache hits",
	},
)

var RateCacheMisses = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "parcels_rate_cache_misses_total",
		Help: "Total number of USD rate cache misses",
	},
)

// CompanyAssignments counts assignment attempts by outcome.
var CompanyAssignments = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "parcels_company_assignments_total",
		Help: "Total number of delivery company assignment attempts by outcome",
	},
	[]string{"outcome"},
)

var RecalculatedPackages = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "parcels_recalculated_packages_total",
		Help: "Total number of packages that received a delivery cost from the bulk job",
	},
)

// JobDuration labels: job.
var JobDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "parcels_job_duration_seconds",
		Help:    "Duration of scheduled job runs in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"job"},
)
