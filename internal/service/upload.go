// upload.go — сервис загрузки голосовых образцов.
// Порядок: валидация → запись байтов в blob storage → вставка метаданных.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/panelvoices/internal/domain/model"
	"github.com/bigkaa/panelvoices/internal/repository"
	"github.com/bigkaa/panelvoices/internal/storage/blobstore"
)

// Prometheus-метрики загрузки.
var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pv_uploads_total",
		Help: "Общее количество загрузок по языку и результату.",
	}, []string{"language", "result"})
	uploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pv_upload_bytes_total",
		Help: "Общий объём загруженных байтов.",
	})
)

// UploadParams — входные данные загрузки.
type UploadParams struct {
	// File — содержимое; nil означает отсутствие файла
	File io.Reader
	// Size — размер в байтах (-1, если неизвестен)
	Size int64
	// OriginalName — имя файла клиента
	OriginalName string
	// ContentType — MIME-тип, заявленный клиентом
	ContentType string
	// Language — язык (до нормализации)
	Language string
}

// UploadService — сервис загрузки аудиообразцов.
type UploadService struct {
	repo   repository.AudioRepository
	blobs  blobstore.Store
	now    func() time.Time
	logger *slog.Logger
}

// NewUploadService создаёт сервис загрузки.
func NewUploadService(repo repository.AudioRepository, blobs blobstore.Store, logger *slog.Logger) *UploadService {
	return &UploadService{
		repo:   repo,
		blobs:  blobs,
		now:    time.Now,
		logger: logger.With(slog.String("component", "upload_service")),
	}
}

// Upload сохраняет файл и создаёт AudioRecord.
//
// Метаданные вставляются только после успешной записи байтов. Если вставка
// не удалась, файл остаётся на диске без записи (безвреден, пока на него
// никто не ссылается).
func (s *UploadService) Upload(ctx context.Context, params UploadParams) (*model.AudioRecord, error) {
	if params.File == nil {
		return nil, newError(KindMissingFile, "No file uploaded", nil)
	}

	lang, err := model.ParseLanguage(params.Language)
	if err != nil {
		return nil, errInvalidLanguage()
	}

	now := s.now().UTC()
	filename := blobstore.GenerateFilename(now, params.OriginalName)

	contentType := blobstore.ContentTypeByExt(filename)
	if contentType == "" {
		contentType = params.ContentType
	}

	saved, err := s.blobs.Save(ctx, params.File, params.Size, filename, contentType)
	if err != nil {
		uploadsTotal.WithLabelValues(lang.String(), "storage_error").Inc()
		s.logger.Error("Ошибка записи файла",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		return nil, newError(KindStorageWriteFailed, "Failed to store uploaded file", err)
	}
	uploadBytesTotal.Add(float64(saved.Size))

	rec := &model.AudioRecord{
		Filename:     filename,
		OriginalName: params.OriginalName,
		StoragePath:  saved.StoragePath,
		Language:     lang,
		UploadedAt:   now,
	}

	id, err := s.repo.InsertAudio(ctx, rec)
	if err != nil {
		uploadsTotal.WithLabelValues(lang.String(), "db_error").Inc()
		s.logger.Error("Ошибка сохранения метаданных, файл остался без записи",
			slog.String("full_path", saved.FullPath),
			slog.String("error", err.Error()),
		)
		return nil, errInternal(err)
	}
	rec.ID = id

	uploadsTotal.WithLabelValues(lang.String(), "ok").Inc()
	s.logger.Info("Файл загружен",
		slog.String("id", id),
		slog.String("filename", filename),
		slog.String("language", lang.String()),
		slog.Int64("size", saved.Size),
	)

	return rec, nil
}
