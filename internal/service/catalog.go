// catalog.go — каталог загруженных образцов и диагностический отчёт.
package service

import (
	"context"
	"log/slog"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/repository"
	"github.com/bigkaa/panelvoices/internal/storage/blobstore"
)

// Catalog — все образцы и счётчики по языкам.
type Catalog struct {
	Audios    []*model.AudioRecord
	Total     int
	Languages model.LanguageCounts
}

// DebugEnvironment — сведения о конфигурации для диагностики.
// Секреты не включаются.
type DebugEnvironment struct {
	Version         string
	StorageURISet   bool
	PublicBaseURL   string
	StorageBackend  string
	BlobBackend     string
	DatabaseName    string
	AudioCollection string
}

// DebugFile — образец с проверкой наличия байтов.
type DebugFile struct {
	Record     *model.AudioRecord
	FileExists bool
	FullPath   string
	PublicURL  string
}

// DebugReport — диагностический отчёт /debug.
type DebugReport struct {
	Environment DebugEnvironment
	Connected   bool
	TotalFiles  int
	Files       []DebugFile
	Languages   model.LanguageCounts
}

// CatalogService — чтение каталога образцов.
type CatalogService struct {
	repo   repository.AudioRepository
	blobs  blobstore.Store
	env    DebugEnvironment
	logger *slog.Logger
}

// NewCatalogService создаёт сервис каталога.
func NewCatalogService(
	repo repository.AudioRepository,
	blobs blobstore.Store,
	env DebugEnvironment,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		repo:   repo,
		blobs:  blobs,
		env:    env,
		logger: logger.With(slog.String("component", "catalog_service")),
	}
}

// List возвращает все образцы (новые первыми) и счётчики по языкам.
func (s *CatalogService) List(ctx context.Context) (*Catalog, error) {
	audios, err := s.repo.ListAudio(ctx)
	if err != nil {
		s.logger.Error("Ошибка получения каталога", slog.String("error", err.Error()))
		return nil, newError(KindInternal, "Failed to fetch audio files", err)
	}

	counts, err := s.repo.CountAudioByLanguage(ctx)
	if err != nil {
		s.logger.Error("Ошибка подсчёта образцов", slog.String("error", err.Error()))
		return nil, newError(KindInternal, "Failed to fetch audio files", err)
	}

	return &Catalog{Audios: audios, Total: len(audios), Languages: counts}, nil
}

// Debug собирает диагностику: конфигурацию, записи и наличие их байтов.
func (s *CatalogService) Debug(ctx context.Context) (*DebugReport, error) {
	audios, err := s.repo.ListAudio(ctx)
	if err != nil {
		s.logger.Error("Ошибка диагностики", slog.String("error", err.Error()))
		return nil, newError(KindInternal, "Debug failed", err)
	}

	report := &DebugReport{
		Environment: s.env,
		Connected:   true,
		TotalFiles:  len(audios),
		Files:       make([]DebugFile, 0, len(audios)),
	}

	for _, a := range audios {
		report.Languages.Add(a.Language, 1)
		report.Files = append(report.Files, DebugFile{
			Record:     a,
			FileExists: s.blobs.Exists(ctx, a.StoragePath),
			FullPath:   s.blobs.FullPath(a.StoragePath),
			PublicURL:  a.StoragePath,
		})
	}

	return report, nil
}
