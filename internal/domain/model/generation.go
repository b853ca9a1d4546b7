package model

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// GenerationRecord — закэшированный результат генерации аудио.
// Тройка (Text, Voice, Language) — естественный ключ кэша (уникальность
// не обеспечивается хранилищем), нормализация не применяется.
type GenerationRecord struct {
	ID       string
	Text     string
	Voice    string
	Language string
	// AudioURL — разрешённый или сфабрикованный URL аудио
	AudioURL  string
	CreatedAt time.Time
	// TextHash — некриптографический дайджест Text для будущей индексации.
	// Для поиска не используется.
	TextHash string
}

// GenerationKey — ключ поиска генерации (точное совпадение всех трёх полей).
type GenerationKey struct {
	Text     string
	Voice    string
	Language string
}

// Key возвращает ключ генерации записи.
func (g *GenerationRecord) Key() GenerationKey {
	return GenerationKey{Text: g.Text, Voice: g.Voice, Language: g.Language}
}

// GenerationFilter — фильтр списка генераций. Пустые поля не применяются.
type GenerationFilter struct {
	Language string
	Voice    string
	Limit    int
}

// TextHash вычисляет xxhash64 текста в шестнадцатеричном виде (16 символов).
func TextHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
