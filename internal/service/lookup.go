// lookup.go — поиск голосового образца по языку и разрешение его URL.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/repository"
)

// LookupResult — найденный образец с абсолютным URL.
type LookupResult struct {
	AudioURL string
	Record   *model.AudioRecord
}

// LookupService — поиск образца по языку.
type LookupService struct {
	repo repository.AudioRepository
	// baseURL — внешний базовый URL (PV_PUBLIC_BASE_URL) без завершающего слэша
	baseURL string
	logger  *slog.Logger
}

// NewLookupService создаёт сервис поиска. baseURL может быть пустым.
func NewLookupService(repo repository.AudioRepository, baseURL string, logger *slog.Logger) *LookupService {
	return &LookupService{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "lookup_service")),
	}
}

// Lookup возвращает самый свежий образец языка.
// requestOrigin ({scheme}://{host} входящего запроса) используется,
// если базовый URL не настроен.
func (s *LookupService) Lookup(ctx context.Context, language, requestOrigin string) (*LookupResult, error) {
	lang, err := model.ParseLanguage(language)
	if err != nil {
		return nil, errInvalidLanguage()
	}

	rec, err := s.repo.FindAudioByLanguage(ctx, lang)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "Audio not found", err)
		}
		s.logger.Error("Ошибка поиска образца",
			slog.String("language", lang.String()),
			slog.String("error", err.Error()),
		)
		return nil, errInternal(err)
	}

	return &LookupResult{
		AudioURL: s.ResolveURL(rec.StoragePath, requestOrigin),
		Record:   rec,
	}, nil
}

// ResolveURL превращает сохранённый путь в абсолютный URL.
// Путь со схемой (http://, https://, ...) возвращается без изменений;
// иначе дополняется базовым URL или origin запроса.
func (s *LookupService) ResolveURL(storagePath, requestOrigin string) string {
	if isAbsoluteURL(storagePath) {
		return storagePath
	}

	base := s.baseURL
	if base == "" {
		base = strings.TrimRight(requestOrigin, "/")
	}
	if !strings.HasPrefix(storagePath, "/") {
		storagePath = "/" + storagePath
	}
	return base + storagePath
}

// isAbsoluteURL проверяет наличие схемы URL.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
