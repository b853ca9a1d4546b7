// health.go — обработчики health endpoints PanelVoices.
// /health/live — liveness probe (процесс жив)
// /health/ready — readiness probe (хранилище метаданных доступно)
// /metrics — Prometheus метрики
package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/panelvoices/internal/config"
)

// statusFail — строковая константа для статуса "fail" в health checks.
const statusFail = "fail"

// ReadinessChecker — интерфейс проверки готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "fail") и сообщение.
	CheckReady() (status string, message string)
}

// DependencyHealth — снимок состояния зависимостей (topologymetrics).
type DependencyHealth interface {
	Health() map[string]bool
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	// storageName — имя проверки хранилища в ответе (postgresql, mongodb)
	storageName string
	storage     ReadinessChecker
	// deps — опциональные некритичные зависимости; влияют только на degraded
	deps        DependencyHealth
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик health endpoints.
// storage может быть nil (readiness вернёт "fail"), deps — nil без мониторинга.
func NewHealthHandler(storageName string, storage ReadinessChecker, deps DependencyHealth) *HealthHandler {
	return &HealthHandler{
		storageName: storageName,
		storage:     storage,
		deps:        deps,
		promHandler: promhttp.Handler(),
	}
}

// healthCheckResult — результат проверки одной зависимости.
type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthLiveResponse — ответ liveness probe.
type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// healthReadyResponse — ответ readiness probe.
type healthReadyResponse struct {
	Status    string                       `json:"status"`
	Timestamp string                       `json:"timestamp"`
	Version   string                       `json:"version"`
	Service   string                       `json:"service"`
	Checks    map[string]healthCheckResult `json:"checks"`
}

// HealthLive — liveness probe. Возвращает 200 если процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthLiveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "panelvoices",
	})
}

// HealthReady — readiness probe.
// Хранилище недоступно → 503 "fail"; некритичная зависимость недоступна → 200 "degraded".
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	overall := "ok"
	httpStatus := http.StatusOK
	checks := make(map[string]healthCheckResult)

	storage := healthCheckResult{Status: statusFail, Message: "Хранилище не настроено"}
	if h.storage != nil {
		status, msg := h.storage.CheckReady()
		storage = healthCheckResult{Status: status, Message: msg}
	}
	checks[h.storageName] = storage
	if storage.Status != "ok" {
		overall = statusFail
		httpStatus = http.StatusServiceUnavailable
	}

	if h.deps != nil {
		for name, healthy := range h.deps.Health() {
			if _, exists := checks[name]; exists {
				continue
			}
			if healthy {
				checks[name] = healthCheckResult{Status: "ok"}
				continue
			}
			checks[name] = healthCheckResult{Status: statusFail, Message: "Зависимость недоступна"}
			if overall == "ok" {
				overall = "degraded"
			}
		}
	}

	writeJSON(w, httpStatus, healthReadyResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "panelvoices",
		Checks:    checks,
	})
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}
