package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AllocationCollisions counts generated candidates that were already taken.
	AllocationCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortener_allocation_collisions_total",
		Help: "Generated short code candidates that collided with an existing link.",
	})

	// AllocationsExhausted counts allocation requests that ran out of attempts
	// at every permitted length.
	AllocationsExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortener_allocations_exhausted_total",
		Help: "Allocation requests that failed after exhausting every candidate length.",
	})

	// LinksCreated counts created links, partitioned by generated or custom code.
	LinksCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortener_links_created_total",
		Help: "Short links created, partitioned by code kind.",
	}, []string{"kind"})

	// Redirects counts resolve calls, partitioned by outcome.
	Redirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortener_redirects_total",
		Help: "Redirect resolutions, partitioned by outcome.",
	}, []string{"outcome"})

	// ClickEventsDelivered counts events accepted by the analytics service.
	ClickEventsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortener_click_events_delivered_total",
		Help: "Click events accepted by the analytics service.",
	})

	// ClickEventRetries counts delivery attempts that failed and were retried.
	ClickEventRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shortener_click_event_retries_total",
		Help: "Click event delivery attempts that failed on a retryable error.",
	})

	// ClickEventsDropped counts events discarded without delivery.
	ClickEventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortener_click_events_dropped_total",
		Help: "Click events dropped without delivery, partitioned by reason.",
	}, []string{"reason"})

	// DispatchQueueDepth tracks events waiting for a delivery worker.
	DispatchQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shortener_dispatch_queue_depth",
		Help: "Click events waiting in the dispatch queue.",
	})
)
