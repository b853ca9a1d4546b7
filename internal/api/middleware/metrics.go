// metrics.go — Prometheus HTTP метрики PanelVoices.
// Регистрирует метрики: pv_http_requests_total, pv_http_request_duration_seconds.
// Нормализация путей предотвращает взрывной рост кардинальности.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики PanelVoices
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pv_http_requests_total",
			Help: "Общее количество HTTP-запросов к PanelVoices",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pv_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к PanelVoices в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.statusCode)
			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(time.Since(start).Seconds())
		})
	}
}

// normalizePath сворачивает пути файлов в шаблоны, неизвестные пути — в "other".
// /uploads/1700000000000-a.mp3 → /uploads/{file}
func normalizePath(path string) string {
	switch path {
	case "/", "/upload-audio", "/audio-url", "/upload", "/generate-audio", "/debug",
		"/health/live", "/health/ready", "/metrics", "/openapi.yaml", "/placeholder.mp3":
		return path
	}

	switch {
	case strings.HasPrefix(path, "/uploads/"):
		return "/uploads/{file}"
	case strings.HasPrefix(path, "/static/"):
		return "/static/{file}"
	}
	return "other"
}
