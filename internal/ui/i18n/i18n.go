// Пакет i18n — локализация страниц PanelVoices.
// Поддерживаемые языки интерфейса совпадают с языками образцов: english, arabic.
// Язык определяется middleware: cookie "lang" → Accept-Language → english.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

// localeFS — встроенные JSON-каталоги переводов (плоские: ключ → строка).
//
//go:embed locales/*.json
var localeFS embed.FS

// matcher — языковой matcher для Accept-Language. Первый тег — default.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Arabic,
})

// contextKey — тип ключа для контекста (избегаем коллизий).
type contextKey string

const contextKeyLang contextKey = "i18n_lang"

// Bundle — переводы для всех языков. Загружается один раз при старте,
// после этого только читается.
type Bundle struct {
	catalogs map[model.Language]map[string]string
}

// Load загружает встроенные каталоги для всех model.SupportedLanguages.
func Load() (*Bundle, error) {
	b := &Bundle{catalogs: make(map[model.Language]map[string]string)}
	for _, lang := range model.SupportedLanguages {
		data, err := localeFS.ReadFile("locales/" + lang.String() + ".json")
		if err != nil {
			return nil, fmt.Errorf("i18n: каталог %s не найден: %w", lang, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("i18n: ошибка парсинга каталога %s: %w", lang, err)
		}
		b.catalogs[lang] = messages
	}
	return b, nil
}

// Translate возвращает перевод ключа. Fallback: английский, затем сам ключ.
func (b *Bundle) Translate(lang model.Language, key string) string {
	if msg, ok := b.catalogs[lang][key]; ok {
		return msg
	}
	if msg, ok := b.catalogs[model.LanguageEnglish][key]; ok {
		return msg
	}
	return key
}

// T переводит ключ на язык из контекста.
func (b *Bundle) T(ctx context.Context, key string) string {
	return b.Translate(FromContext(ctx), key)
}

// Keys возвращает число ключей в каталоге языка.
func (b *Bundle) Keys(lang model.Language) int {
	return len(b.catalogs[lang])
}

// MatchLanguage определяет язык интерфейса по Accept-Language.
// Арабский → arabic, всё остальное → english.
func MatchLanguage(acceptLanguage string) model.Language {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	if base.String() == "ar" {
		return model.LanguageArabic
	}
	return model.LanguageEnglish
}

// WithLanguage помещает язык в контекст.
func WithLanguage(ctx context.Context, lang model.Language) context.Context {
	return context.WithValue(ctx, contextKeyLang, lang)
}

// FromContext извлекает язык из контекста. Default: english.
func FromContext(ctx context.Context) model.Language {
	if lang, ok := ctx.Value(contextKeyLang).(model.Language); ok && lang != "" {
		return lang
	}
	return model.LanguageEnglish
}

// Dir возвращает направление текста для атрибута dir.
func Dir(lang model.Language) string {
	if lang == model.LanguageArabic {
		return "rtl"
	}
	return "ltr"
}
