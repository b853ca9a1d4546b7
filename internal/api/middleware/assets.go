// assets.go — заголовки для раздачи загруженных аудиофайлов.
package middleware

import (
	"net/http"
	"strings"

	"github.com/bigkaa/panelvoices/internal/storage/blobstore"
)

// AudioAssetHeaders добавляет к запросам с префиксом /uploads/ CORS-заголовки,
// Accept-Ranges и Content-Type по расширению файла. Запрос всегда передаётся
// дальше. Остальные пути не затрагиваются.
//
// Заголовки сохраняются и для ответов с ошибкой (файл не найден, листинг
// директории): http.Error перезаписывает Content-Type, поэтому ответ 4xx/5xx
// отдаётся с исходными заголовками и пустым телом.
func AudioAssetHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, blobstore.UploadsPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		contentType := blobstore.ContentTypeByExt(r.URL.Path)
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Range, Content-Type")
		h.Set("Accept-Ranges", "bytes")
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		next.ServeHTTP(&assetWriter{ResponseWriter: w, contentType: contentType}, r)
	})
}

// assetWriter восстанавливает Content-Type аудиофайла в ответах с ошибкой
// и отбрасывает текстовое тело ошибки.
type assetWriter struct {
	http.ResponseWriter
	contentType string
	discard     bool
	wroteHeader bool
}

// WriteHeader перехватывает статус ответа.
func (aw *assetWriter) WriteHeader(code int) {
	if aw.wroteHeader {
		return
	}
	aw.wroteHeader = true
	if code >= http.StatusBadRequest {
		h := aw.ResponseWriter.Header()
		h.Del("X-Content-Type-Options")
		h.Del("Content-Length")
		if aw.contentType != "" {
			h.Set("Content-Type", aw.contentType)
		}
		aw.discard = true
	}
	aw.ResponseWriter.WriteHeader(code)
}

// Write записывает тело, если ответ не является ошибкой.
func (aw *assetWriter) Write(b []byte) (int, error) {
	if !aw.wroteHeader {
		aw.WriteHeader(http.StatusOK)
	}
	if aw.discard {
		return len(b), nil
	}
	return aw.ResponseWriter.Write(b)
}

// Unwrap возвращает исходный ResponseWriter (для http.ResponseController).
func (aw *assetWriter) Unwrap() http.ResponseWriter {
	return aw.ResponseWriter
}
