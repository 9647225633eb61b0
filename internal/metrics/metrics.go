// Package metrics exposes Prometheus instrumentation for path searches.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdrpinto/astargrid"
)

const namespace = "astargrid"

// Metrics methods are safe to call on a nil receiver.
type Metrics struct {
	searches      *prometheus.CounterVec
	expandedNodes prometheus.Histogram
	pathLength    prometheus.Histogram
	cacheRequests *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total searches by outcome (found, not_found, invalid).",
		}, []string{"outcome"}),
		expandedNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expanded_nodes",
			Help:      "Nodes moved to the closed set per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		pathLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length",
			Help:      "Moves in each path found.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		cacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Path cache lookups by result (hit, miss).",
		}, []string{"result"}),
	}
}

// ObserveSearch records the outcome of one search.
func (m *Metrics) ObserveSearch(result astargrid.Result, err error) {
	if m == nil {
		return
	}
	switch {
	case errors.Is(err, astargrid.ErrCoordinateOutOfBounds):
		m.searches.WithLabelValues("invalid").Inc()
		return
	case err != nil:
		return
	case result.Found:
		m.searches.WithLabelValues("found").Inc()
		m.pathLength.Observe(float64(result.Cost))
	default:
		m.searches.WithLabelValues("not_found").Inc()
	}
	m.expandedNodes.Observe(float64(result.ExpandedNodes))
}

// ObserveCache records one cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheRequests.WithLabelValues("hit").Inc()
	} else {
		m.cacheRequests.WithLabelValues("miss").Inc()
	}
}
