// Package prometheus instruments iframer services with Prometheus metrics.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/iframer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution outcomes.
const (
	OutcomeEmbed    = "embed"    // an iframe was found
	OutcomeMetadata = "metadata" // no iframe, but some metadata
	OutcomeMiss     = "miss"     // only mediaId and href
)

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	registry *prometheus.Registry

	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
	strategies  *prometheus.CounterVec
}

// NewMetrics creates the collectors on a dedicated registry, together with
// the standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iframer",
			Name:      "resolutions_total",
			Help:      "Resolved URLs by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "iframer",
			Name:      "resolve_duration_seconds",
			Help:      "Time spent resolving a URL.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		strategies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iframer",
			Name:      "strategy_results_total",
			Help:      "Embed strategy results by strategy and result.",
		}, []string{"strategy", "result"}),
	}
	m.registry.MustRegister(
		m.resolutions,
		m.duration,
		m.strategies,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Ensure Resolver implements iframer.Resolver.
var _ iframer.Resolver = (*Resolver)(nil)

// Resolver counts resolutions by outcome and records their duration.
type Resolver struct {
	next    iframer.Resolver
	metrics *Metrics
}

// NewResolver wraps next with metrics.
func NewResolver(next iframer.Resolver, metrics *Metrics) *Resolver {
	return &Resolver{next: next, metrics: metrics}
}

// Resolve delegates to the wrapped resolver.
func (r *Resolver) Resolve(ctx context.Context, req *iframer.Request) *iframer.Media {
	begin := time.Now()
	media := r.next.Resolve(ctx, req)
	r.metrics.duration.Observe(time.Since(begin).Seconds())
	r.metrics.resolutions.WithLabelValues(Outcome(media)).Inc()
	return media
}

// Outcome classifies a resolved Media record.
func Outcome(m *iframer.Media) string {
	switch {
	case m.HasEmbed():
		return OutcomeEmbed
	case m.Title != "" || m.Description != "" || m.AuthorName != "" || m.ThumbnailURL != "":
		return OutcomeMetadata
	default:
		return OutcomeMiss
	}
}

// Ensure Strategy implements iframer.Strategy.
var _ iframer.Strategy = (*Strategy)(nil)

// Strategy counts hits, misses and errors of a single strategy.
type Strategy struct {
	next    iframer.Strategy
	metrics *Metrics
}

// NewStrategy wraps next with metrics.
func NewStrategy(next iframer.Strategy, metrics *Metrics) *Strategy {
	return &Strategy{next: next, metrics: metrics}
}

// Name returns the wrapped strategy's name.
func (s *Strategy) Name() string {
	return s.next.Name()
}

// Resolve delegates to the wrapped strategy.
func (s *Strategy) Resolve(ctx context.Context, sc *iframer.StrategyContext) (*iframer.Embed, error) {
	embed, err := s.next.Resolve(ctx, sc)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case !embed.IsZero():
		result = "hit"
	}
	s.metrics.strategies.WithLabelValues(s.next.Name(), result).Inc()
	return embed, err
}
