// Пакет model — доменные модели PanelVoices.
// AudioRecord — загруженный голосовой образец, GenerationRecord — результат
// (mock) генерации речи. Обе записи создаются один раз и не изменяются.
package model

import (
	"errors"
	"time"

	"golang.org/x/text/cases"
)

// Language — язык голосового образца.
type Language string

// Допустимые языки загружаемых образцов (закрытое множество).
const (
	LanguageEnglish Language = "english"
	LanguageArabic  Language = "arabic"
)

// SupportedLanguages — все допустимые значения Language в порядке отображения.
var SupportedLanguages = []Language{LanguageEnglish, LanguageArabic}

// ErrUnsupportedLanguage — язык вне множества {english, arabic}.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseLanguage приводит строку к нижнему регистру (Unicode case folding)
// и проверяет принадлежность закрытому множеству языков. Пробелы не обрезаются.
func ParseLanguage(s string) (Language, error) {
	folded := cases.Fold().String(s)
	for _, l := range SupportedLanguages {
		if folded == string(l) {
			return l, nil
		}
	}
	return "", ErrUnsupportedLanguage
}

// String реализует fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// AudioRecord — метаданные загруженного аудиофайла.
type AudioRecord struct {
	// ID — идентификатор, назначенный хранилищем
	ID string
	// Filename — уникальное имя на диске: {unixMillis}-{originalName}
	Filename string
	// OriginalName — имя, переданное клиентом (только для отображения)
	OriginalName string
	// StoragePath — путь относительно корня публичных ассетов (/uploads/...)
	// или абсолютный URL (blob-бэкенд minio)
	StoragePath string
	// Language — язык образца (всегда нормализован)
	Language Language
	// UploadedAt — время вставки, не изменяется
	UploadedAt time.Time
}

// LanguageCounts — количество образцов по языкам.
type LanguageCounts struct {
	English int `json:"english"`
	Arabic  int `json:"arabic"`
}

// Add увеличивает счётчик для языка l на n.
func (c *LanguageCounts) Add(l Language, n int) {
	switch l {
	case LanguageEnglish:
		c.English += n
	case LanguageArabic:
		c.Arabic += n
	}
}
