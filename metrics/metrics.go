// Package metrics exposes prometheus counters for the order api.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg         *prometheus.Registry
	Fetches     prometheus.Counter
	FetchErrors prometheus.Counter
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	Orders      prometheus.Gauge
	FetchSec    prometheus.Histogram
	Requests    *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	fetches := prometheus.NewCounter(prometheus.CounterOpts{Name: "cafedash_fetches_total"})
	fetchErrors := prometheus.NewCounter(prometheus.CounterOpts{Name: "cafedash_fetch_errors_total"})
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "cafedash_cache_hits_total"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{Name: "cafedash_cache_misses_total"})
	orders := prometheus.NewGauge(prometheus.GaugeOpts{Name: "cafedash_snapshot_orders"})
	fetchSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cafedash_fetch_seconds",
		Buckets: prometheus.DefBuckets,
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "cafedash_requests_total"}, []string{"route", "code"})

	r.MustRegister(fetches, fetchErrors, hits, misses, orders, fetchSec, requests)
	return &Registry{
		reg:         r,
		Fetches:     fetches,
		FetchErrors: fetchErrors,
		CacheHits:   hits,
		CacheMisses: misses,
		Orders:      orders,
		FetchSec:    fetchSec,
		Requests:    requests,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
