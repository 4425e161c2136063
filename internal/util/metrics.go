package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItemsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_submitted_total",
		Help: "Total number of items registered into the pending store",
	})

	ItemsApprovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_approved_total",
		Help: "Total number of items moved to the approved catalog",
	})

	ItemsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_rejected_total",
		Help: "Total number of items sent to correction",
	})

	ItemsResubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_resubmitted_total",
		Help: "Total number of corrected items returned to pending",
	})

	ItemsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_removed_total",
		Help: "Total number of approved items archived",
	})

	ItemsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_updated_total",
		Help: "Total number of in-place edits of approved items",
	})

	DuplicateCodesBlockedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_duplicate_codes_blocked_total",
		Help: "Registrations blocked by the dedup guard",
	}, []string{"origin"})

	TransitionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_transitions_failed_total",
		Help: "Total number of failed lifecycle transitions",
	}, []string{"operation", "reason"})

	TransitionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_transition_latency_seconds",
		Help:    "Latency of lifecycle transitions",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	DedupCacheFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_dedup_cache_fallbacks_total",
		Help: "Dedup guard checks that fell back from Redis to the database",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
