// middleware.go — HTTP middleware для определения языка пользователя.
package i18n

import (
	"net/http"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

// LangCookieName — имя cookie для хранения выбранного языка.
const LangCookieName = "lang"

// Middleware определяет язык и помещает его в контекст запроса.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLanguage(r.Context(), detectLanguage(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// detectLanguage: cookie "lang" → Accept-Language → english.
func detectLanguage(r *http.Request) model.Language {
	if cookie, err := r.Cookie(LangCookieName); err == nil && cookie.Value != "" {
		if lang, err := model.ParseLanguage(cookie.Value); err == nil {
			return lang
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return MatchLanguage(accept)
	}

	return model.LanguageEnglish
}
