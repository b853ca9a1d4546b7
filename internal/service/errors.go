// Пакет service — бизнес-логика PanelVoices: загрузка и поиск голосовых
// образцов, генерация (mock) речи с кэшированием, каталог и диагностика.
package service

import (
	"errors"
	"fmt"
)

// Kind — категория ошибки сервисного слоя. Транспорт отображает её
// в HTTP-статус единообразно для всех обработчиков.
type Kind string

// Категории ошибок.
const (
	KindInvalidLanguage    Kind = "INVALID_LANGUAGE"
	KindMissingFile        Kind = "MISSING_FILE"
	KindMissingField       Kind = "MISSING_FIELD"
	KindInvalidParameter   Kind = "INVALID_PARAMETER"
	KindNotFound           Kind = "NOT_FOUND"
	KindStorageWriteFailed Kind = "STORAGE_WRITE_FAILED"
	KindInternal           Kind = "INTERNAL_ERROR"
)

// Error — структурированная ошибка сервисного слоя.
// Message безопасно показывать клиенту, Err — внутренняя причина (только в логи).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsValidation сообщает, является ли ошибка ошибкой входных данных.
func (k Kind) IsValidation() bool {
	switch k {
	case KindInvalidLanguage, KindMissingFile, KindMissingField, KindInvalidParameter:
		return true
	}
	return false
}

// KindOf возвращает категорию ошибки; для ошибок вне сервисного слоя — KindInternal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// --- Конструкторы для типичных ошибок ---

func errInvalidLanguage() *Error {
	return newError(KindInvalidLanguage, "Language must be 'english' or 'arabic'", nil)
}

func errInternal(err error) *Error {
	return newError(KindInternal, "Internal server error", err)
}
