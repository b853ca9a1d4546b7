// generation.go — HTTP handlers генерации речи и списка генераций.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bigkaa/panelvoices/internal/api/errors"
	"github.com/bigkaa/panelvoices/internal/api/openapi"
	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/service"
)

// maxGenerateBody — ограничение тела POST /generate-audio.
const maxGenerateBody = 1 << 20

// GenerationHandler — обработчик endpoints генерации.
type GenerationHandler struct {
	svc    *service.GenerationService
	logger *slog.Logger
}

// NewGenerationHandler создаёт обработчик генерации.
func NewGenerationHandler(svc *service.GenerationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		svc:    svc,
		logger: logger.With(slog.String("component", "generation_handler")),
	}
}

// generateRequest — тело POST /generate-audio.
type generateRequest struct {
	Text     string `json:"text"`
	Voice    string `json:"voice"`
	Language string `json:"language"`
}

// generateResponse — ответ POST /generate-audio. ID пуст при попадании в кэш.
type generateResponse struct {
	AudioURL string `json:"audioUrl"`
	ID       string `json:"id,omitempty"`
	Cached   bool   `json:"cached"`
}

// generationItem — элемент списка генераций.
type generationItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Voice     string    `json:"voice"`
	Language  string    `json:"language"`
	AudioURL  string    `json:"audioUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// generationListResponse — ответ GET /generate-audio.
type generationListResponse struct {
	AudioGenerations []generationItem `json:"audioGenerations"`
}

// GenerateAudio обрабатывает POST /generate-audio.
// JSON: {text, voice, language}; все поля обязательны.
func (h *GenerationHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGenerateBody)).Decode(&req); err != nil {
		errors.ValidationError(w, "Invalid JSON body")
		return
	}

	result, err := h.svc.Generate(r.Context(), service.GenerateRequest{
		Text:     req.Text,
		Voice:    req.Voice,
		Language: req.Language,
	})
	if err != nil {
		errors.WriteServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		AudioURL: result.AudioURL,
		ID:       result.ID,
		Cached:   result.Cached,
	})
}

// ListGenerations обрабатывает GET /generate-audio?language=&voice=&limit=
// Пустые фильтры не применяются.
func (h *GenerationHandler) ListGenerations(w http.ResponseWriter, r *http.Request, params openapi.ListGenerationsParams) {
	limit, err := service.NormalizeLimit(params.Limit)
	if err != nil {
		errors.WriteServiceError(w, h.logger, err)
		return
	}

	filter := model.GenerationFilter{Limit: limit}
	if params.Language != nil {
		filter.Language = *params.Language
	}
	if params.Voice != nil {
		filter.Voice = *params.Voice
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		errors.WriteServiceError(w, h.logger, err)
		return
	}

	resp := generationListResponse{AudioGenerations: make([]generationItem, 0, len(items))}
	for _, g := range items {
		resp.AudioGenerations = append(resp.AudioGenerations, generationItem{
			ID:        g.ID,
			Text:      g.Text,
			Voice:     g.Voice,
			Language:  g.Language,
			AudioURL:  g.AudioURL,
			CreatedAt: g.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
