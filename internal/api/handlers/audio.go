// audio.go — HTTP handlers каталога голосовых образцов:
// поиск по языку, загрузка, список.
package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bigkaa/panelvoices/internal/api/errors"
	"github.com/bigkaa/panelvoices/internal/api/openapi"
	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/service"
)

// multipartMemory — часть multipart-формы, удерживаемая в памяти;
// остальное ParseMultipartForm сбрасывает во временные файлы.
const multipartMemory = 32 << 20

// AudioHandler — обработчик endpoints образцов.
type AudioHandler struct {
	upload         *service.UploadService
	lookup         *service.LookupService
	catalog        *service.CatalogService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewAudioHandler создаёт обработчик образцов.
// maxUploadBytes ограничивает тело POST /upload.
func NewAudioHandler(
	upload *service.UploadService,
	lookup *service.LookupService,
	catalog *service.CatalogService,
	maxUploadBytes int64,
	logger *slog.Logger,
) *AudioHandler {
	return &AudioHandler{
		upload:         upload,
		lookup:         lookup,
		catalog:        catalog,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "audio_handler")),
	}
}

// audioURLResponse — ответ GET /audio-url.
type audioURLResponse struct {
	AudioURL string `json:"audioUrl"`
	Filename string `json:"filename"`
	Language string `json:"language"`
}

// uploadResponse — ответ POST /upload.
type uploadResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Language string `json:"language"`
}

// audioItem — элемент каталога.
type audioItem struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	URL          string    `json:"url"`
	Language     string    `json:"language"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// audioListResponse — ответ GET /upload.
type audioListResponse struct {
	Audios    []audioItem          `json:"audios"`
	Total     int                  `json:"total"`
	Languages model.LanguageCounts `json:"languages"`
}

// GetAudioUrl обрабатывает GET /audio-url?language=...
// Возвращает абсолютный URL самого свежего образца языка.
func (h *AudioHandler) GetAudioUrl(w http.ResponseWriter, r *http.Request, params openapi.GetAudioUrlParams) {
	language := ""
	if params.Language != nil {
		language = *params.Language
	}

	result, err := h.lookup.Lookup(r.Context(), language, requestOrigin(r))
	if err != nil {
		errors.WriteServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, audioURLResponse{
		AudioURL: result.AudioURL,
		Filename: result.Record.Filename,
		Language: result.Record.Language.String(),
	})
}

// UploadAudio обрабатывает POST /upload.
// Multipart form: file (обязательно), language (english | arabic).
func (h *AudioHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	// Ошибка разбора, кроме превышения размера, означает отсутствие файла:
	// её вернёт сервис как MISSING_FILE.
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			errors.WriteError(w, http.StatusBadRequest, string(service.KindMissingFile), "File too large")
			return
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	params := service.UploadParams{
		Language: r.FormValue("language"),
		Size:     -1,
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		params.File = file
		params.Size = header.Size
		params.OriginalName = header.Filename
		params.ContentType = header.Header.Get("Content-Type")
	}

	rec, err := h.upload.Upload(r.Context(), params)
	if err != nil {
		errors.WriteServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		ID:       rec.ID,
		URL:      rec.StoragePath,
		Filename: rec.Filename,
		Language: rec.Language.String(),
	})
}

// ListAudio обрабатывает GET /upload — весь каталог, новые первыми.
func (h *AudioHandler) ListAudio(w http.ResponseWriter, r *http.Request) {
	cat, err := h.catalog.List(r.Context())
	if err != nil {
		errors.WriteServiceError(w, h.logger, err)
		return
	}

	items := make([]audioItem, 0, len(cat.Audios))
	for _, a := range cat.Audios {
		items = append(items, toAudioItem(a))
	}

	writeJSON(w, http.StatusOK, audioListResponse{
		Audios:    items,
		Total:     cat.Total,
		Languages: cat.Languages,
	})
}

func toAudioItem(a *model.AudioRecord) audioItem {
	return audioItem{
		ID:           a.ID,
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		URL:          a.StoragePath,
		Language:     a.Language.String(),
		UploadedAt:   a.UploadedAt,
	}
}
