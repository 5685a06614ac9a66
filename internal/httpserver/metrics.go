package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/erraggy/schemadiff/differ"
	"github.com/erraggy/schemadiff/internal/resultcache"
)

const metricsNamespace = "schemadiff"

type metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	changes     *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time spent serving HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		changes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "changes_total",
			Help:      "Changes reported by comparisons, by severity.",
		}, []string{"severity"}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Comparisons answered from the result cache.",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "Comparisons computed because no cached result existed.",
		}),
	}
}

// registerCacheSize exposes the number of cached results. A nil cache reports zero.
func registerCacheSize(reg prometheus.Registerer, cache *resultcache.Cache) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "cache_entries",
		Help:      "Comparison results currently held in the cache.",
	}, func() float64 {
		return float64(cache.Stats().Size)
	})
}

func (m *metrics) observeResult(result *differ.ComparisonResult, hit bool) {
	if hit {
		m.cacheHits.Inc()
		return
	}
	m.cacheMisses.Inc()
	m.changes.WithLabelValues(differ.SeverityCritical.String()).Add(float64(result.Breaking))
	m.changes.WithLabelValues(differ.SeverityWarning.String()).Add(float64(result.Warnings))
	m.changes.WithLabelValues(differ.SeverityInfo.String()).Add(float64(result.Info))
}
