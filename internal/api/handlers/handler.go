// handler.go — APIHandler реализует openapi.ServerInterface,
// делегируя вызовы в отдельные handler'ы по доменам.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bigkaa/panelvoices/internal/api/openapi"
)

// APIHandler — единая реализация ServerInterface, собирающая
// все доменные handlers в один объект.
type APIHandler struct {
	audio      *AudioHandler
	generation *GenerationHandler
	debug      *DebugHandler
	health     *HealthHandler
}

// NewAPIHandler создаёт единый handler для всех endpoints.
func NewAPIHandler(
	audio *AudioHandler,
	generation *GenerationHandler,
	debug *DebugHandler,
	health *HealthHandler,
) *APIHandler {
	return &APIHandler{
		audio:      audio,
		generation: generation,
		debug:      debug,
		health:     health,
	}
}

// --- Audio ---

func (h *APIHandler) GetAudioUrl(w http.ResponseWriter, r *http.Request, params openapi.GetAudioUrlParams) {
	h.audio.GetAudioUrl(w, r, params)
}

func (h *APIHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	h.audio.UploadAudio(w, r)
}

func (h *APIHandler) ListAudio(w http.ResponseWriter, r *http.Request) {
	h.audio.ListAudio(w, r)
}

// --- Generation ---

func (h *APIHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	h.generation.GenerateAudio(w, r)
}

func (h *APIHandler) ListGenerations(w http.ResponseWriter, r *http.Request, params openapi.ListGenerationsParams) {
	h.generation.ListGenerations(w, r, params)
}

// --- Diagnostics ---

func (h *APIHandler) Debug(w http.ResponseWriter, r *http.Request) {
	h.debug.Debug(w, r)
}

// --- Health ---

func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// --- Metrics ---

func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ openapi.ServerInterface = (*APIHandler)(nil)

// writeJSON записывает JSON-ответ с заданным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestOrigin возвращает {scheme}://{host} входящего запроса.
// Схема берётся из X-Forwarded-Proto (за reverse proxy), затем из TLS.
// Из заголовка принимаются только http и https.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		switch p := strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0])); p {
		case "http", "https":
			scheme = p
		}
	}
	return scheme + "://" + r.Host
}
