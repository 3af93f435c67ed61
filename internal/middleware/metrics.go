package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/utils"
)

// MetricsConfig metrics middleware ayarları
type MetricsConfig struct {
	Namespace            string
	SlowRequestThreshold time.Duration // Yavaş istek eşiği
}

// DefaultMetricsConfig varsayılan config
func DefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		Namespace:            "point_api",
		SlowRequestThreshold: 2 * time.Second,
	}
}

// HTTPMetrics HTTP isteklerinin Prometheus metrikleri
type HTTPMetrics struct {
	config       *MetricsConfig
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	inFlight     prometheus.Gauge
	slowRequests *prometheus.CounterVec
}

// NewHTTPMetrics metrikleri reg üzerine kaydeder; reg nil ise default registerer
func NewHTTPMetrics(config *MetricsConfig, reg prometheus.Registerer) (*HTTPMetrics, error) {
	if config == nil {
		config = DefaultMetricsConfig()
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &HTTPMetrics{
		config: config,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		slowRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "http_slow_requests_total",
			Help:      "HTTP requests slower than the configured threshold.",
		}, []string{"method", "route"}),
	}

	var err error
	if m.requests, err = utils.RegisterOrExisting(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = utils.RegisterOrExisting(reg, m.duration); err != nil {
		return nil, err
	}
	if m.inFlight, err = utils.RegisterOrExisting(reg, m.inFlight); err != nil {
		return nil, err
	}
	if m.slowRequests, err = utils.RegisterOrExisting(reg, m.slowRequests); err != nil {
		return nil, err
	}

	return m, nil
}

// Middleware istek sayısı, süre ve eşzamanlılık metriklerini toplar.
// Route label'ı mux path template'idir (/point/{id}/charge), ham path kullanılmaz.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(start)
		route := routeTemplate(r)

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		if m.config.SlowRequestThreshold > 0 && elapsed > m.config.SlowRequestThreshold {
			m.slowRequests.WithLabelValues(r.Method, route).Inc()
			log.Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("response_time", elapsed).
				Msg("Slow request detected")
		}
	})
}

// MetricsHandler Prometheus exposition formatında metrikleri sunar
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// routeTemplate eşleşen mux route'unun template'ini döner
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
