package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts handled requests.
	// Labels: route (the matched pattern), status
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status",
	}, []string{"route", "status"})

	// requestDuration measures handler latency.
	// Labels: route
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "roster",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// rateLimited counts requests rejected by the limiter.
	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roster",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Total requests rejected by the rate limiter",
	})

	// recordsImported counts records inserted through spreadsheet uploads.
	recordsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roster",
		Subsystem: "records",
		Name:      "imported_total",
		Help:      "Total records inserted by spreadsheet import",
	})

	// recordsDeleted counts records removed.
	// Labels: mode (single, bulk)
	recordsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roster",
		Subsystem: "records",
		Name:      "deleted_total",
		Help:      "Total records deleted",
	}, []string{"mode"})
)
