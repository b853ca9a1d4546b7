// debug.go — диагностический endpoint: конфигурация хранилища,
// записи каталога и наличие их файлов.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/panelvoices/internal/api/errors"
	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/service"
)

// DebugHandler — обработчик GET /debug.
type DebugHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewDebugHandler создаёт обработчик диагностики.
func NewDebugHandler(catalog *service.CatalogService, logger *slog.Logger) *DebugHandler {
	return &DebugHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "debug_handler")),
	}
}

type debugEnvironment struct {
	Version         string `json:"version"`
	StorageURI      string `json:"storageUri"`
	PublicBaseURL   string `json:"publicBaseUrl"`
	StorageBackend  string `json:"storageBackend"`
	BlobBackend     string `json:"blobBackend"`
	DatabaseName    string `json:"databaseName,omitempty"`
	AudioCollection string `json:"audioCollection,omitempty"`
}

type debugDatabase struct {
	Connected  bool   `json:"connected"`
	Backend    string `json:"backend"`
	TotalFiles int    `json:"totalFiles"`
}

type debugFile struct {
	audioItem
	FileExists bool   `json:"fileExists"`
	FullPath   string `json:"fullPath"`
	PublicURL  string `json:"publicUrl"`
}

type debugResponse struct {
	Environment debugEnvironment     `json:"environment"`
	Database    debugDatabase        `json:"database"`
	AudioFiles  []debugFile          `json:"audioFiles"`
	Languages   model.LanguageCounts `json:"languages"`
}

// Debug обрабатывает GET /debug. Секреты (строка подключения) не раскрываются.
func (h *DebugHandler) Debug(w http.ResponseWriter, r *http.Request) {
	report, err := h.catalog.Debug(r.Context())
	if err != nil {
		errors.WriteServiceError(w, h.logger, err)
		return
	}

	env := report.Environment
	storageURI := "NOT SET"
	if env.StorageURISet {
		storageURI = "SET"
	}
	publicBase := env.PublicBaseURL
	if publicBase == "" {
		publicBase = "NOT SET"
	}

	resp := debugResponse{
		Environment: debugEnvironment{
			Version:         env.Version,
			StorageURI:      storageURI,
			PublicBaseURL:   publicBase,
			StorageBackend:  env.StorageBackend,
			BlobBackend:     env.BlobBackend,
			DatabaseName:    env.DatabaseName,
			AudioCollection: env.AudioCollection,
		},
		Database: debugDatabase{
			Connected:  report.Connected,
			Backend:    env.StorageBackend,
			TotalFiles: report.TotalFiles,
		},
		AudioFiles: make([]debugFile, 0, len(report.Files)),
		Languages:  report.Languages,
	}
	for _, f := range report.Files {
		resp.AudioFiles = append(resp.AudioFiles, debugFile{
			audioItem:  toAudioItem(f.Record),
			FileExists: f.FileExists,
			FullPath:   f.FullPath,
			PublicURL:  f.PublicURL,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
