// Пакет errors — единый формат ошибок HTTP API PanelVoices.
// Формат: {"error": "...", "code": "..."}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors //nolint:revive // пакет errors, конфликт со stdlib

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/bigkaa/panelvoices/internal/service"
)

// Коды ошибок, определённые в OpenAPI контракте.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// errorBody — тело ответа ошибки.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteError записывает ответ ошибки в стандартном формате.
// statusCode — HTTP статус-код, code — машиночитаемый код, message — описание.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: message,
		Code:  code,
	})
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}

// StatusForKind отображает категорию ошибки сервиса в HTTP-статус:
// ошибки входных данных — 400, NotFound — 404, остальное — 500.
func StatusForKind(kind service.Kind) int {
	switch {
	case kind.IsValidation():
		return http.StatusBadRequest
	case kind == service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError записывает ошибку сервисного слоя.
// Внутренние причины логируются и клиенту не передаются.
func WriteServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var se *service.Error
	if !stderrors.As(err, &se) {
		logger.Error("Необработанная ошибка", slog.String("error", err.Error()))
		InternalError(w, "Internal server error")
		return
	}

	status := StatusForKind(se.Kind)
	if status == http.StatusInternalServerError && se.Err != nil {
		logger.Error("Внутренняя ошибка",
			slog.String("kind", string(se.Kind)),
			slog.String("error", se.Err.Error()),
		)
	}
	WriteError(w, status, string(se.Kind), se.Message)
}

// ParamError — обработчик ошибок разбора параметров запроса (400 INVALID_PARAMETER).
// Сигнатура совместима с openapi.ChiServerOptions.ErrorHandlerFunc.
func ParamError(w http.ResponseWriter, _ *http.Request, err error) {
	WriteError(w, http.StatusBadRequest, string(service.KindInvalidParameter), err.Error())
}
