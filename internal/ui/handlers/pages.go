// Пакет handlers — HTTP-обработчики страниц PanelVoices.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/ui/i18n"
	"github.com/bigkaa/panelvoices/internal/ui/pages"
)

// PagesHandler — обработчик страниц.
type PagesHandler struct {
	bundle *i18n.Bundle
	voices []string
	logger *slog.Logger
}

// NewPagesHandler создаёт обработчик страниц. voices — имена голосов
// для выпадающего списка главной страницы.
func NewPagesHandler(bundle *i18n.Bundle, voices []string, logger *slog.Logger) *PagesHandler {
	return &PagesHandler{
		bundle: bundle,
		voices: voices,
		logger: logger.With(slog.String("component", "ui.pages")),
	}
}

// HandleHome обрабатывает GET / — маркетинговая страница.
func (h *PagesHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home", pages.Home(h.bundle.T, pages.HomeData{
		Voices:    h.voices,
		Languages: model.SupportedLanguages,
		Selected:  i18n.FromContext(r.Context()),
	}))
}

// HandleUpload обрабатывает GET /upload-audio — страница загрузки образцов.
func (h *PagesHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "upload", pages.Upload(h.bundle.T, pages.UploadData{
		Languages: model.SupportedLanguages,
		Selected:  i18n.FromContext(r.Context()),
	}))
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, page string, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("Ошибка рендеринга страницы",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
	}
}
