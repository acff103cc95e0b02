// Package metrics exposes Prometheus collectors for the HTTP surface and the playlist itself.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/playlist/internal/domain"
)

const namespace = "playlist"

// StatsFunc computes collection aggregates at scrape time.
type StatsFunc func(ctx context.Context) (domain.Stats, error)

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	videosAdded     prometheus.Counter
	videosDeleted   prometheus.Counter
	likes           prometheus.Counter
	favoriteToggles *prometheus.CounterVec
}

var _ domain.Observer = (*Metrics)(nil)

// New creates a registry with HTTP, playlist and runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"method", "route"}),
		videosAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "videos_added_total",
			Help:      "Videos added to the playlist.",
		}),
		videosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "videos_deleted_total",
			Help:      "Videos removed from the playlist.",
		}),
		likes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likes_total",
			Help:      "Likes given.",
		}),
		favoriteToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_toggles_total",
			Help:      "Favorite flag changes, by resulting state.",
		}, []string{"favorite"}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.videosAdded,
		m.videosDeleted,
		m.likes,
		m.favoriteToggles,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterCollection adds gauges reading the collection aggregates on each scrape.
func (m *Metrics) RegisterCollection(stats StatsFunc, timeout time.Duration) {
	read := func(pick func(domain.Stats) int64) func() float64 {
		return func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			st, err := stats(ctx)
			if err != nil {
				return 0
			}
			return float64(pick(st))
		}
	}

	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "videos",
			Help:      "Videos currently in the playlist.",
		}, read(func(s domain.Stats) int64 { return s.TotalVideos })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favorite_videos",
			Help:      "Videos currently marked as favorite.",
		}, read(func(s domain.Stats) int64 { return s.TotalFavorites })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_likes",
			Help:      "Sum of likes over the playlist.",
		}, read(func(s domain.Stats) int64 { return s.TotalLikes })),
	)
}

// Instrument wraps next with request count, latency and in-flight tracking.
// Requests are labelled by chi route pattern to keep cardinality bounded.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) VideoAdded()   { m.videosAdded.Inc() }
func (m *Metrics) VideoDeleted() { m.videosDeleted.Inc() }
func (m *Metrics) LikeAdded()    { m.likes.Inc() }

func (m *Metrics) FavoriteToggled(favorite bool) {
	m.favoriteToggles.WithLabelValues(strconv.FormatBool(favorite)).Inc()
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
