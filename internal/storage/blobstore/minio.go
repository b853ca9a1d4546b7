package blobstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig — параметры подключения к MinIO.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBase — внешний базовый URL объектов; пусто — {scheme}://{endpoint}
	PublicBase string
}

// MinioStore — объекты в bucket MinIO. StoragePath — абсолютный URL объекта,
// поэтому Lookup возвращает его без изменений.
type MinioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinio подключается к MinIO и создаёт bucket, если его нет.
func NewMinio(ctx context.Context, cfg MinioConfig, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("ошибка создания bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("Bucket MinIO создан", slog.String("bucket", cfg.Bucket))
	}

	return &MinioStore{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: minioPublicBase(cfg),
	}, nil
}

// minioPublicBase вычисляет базовый URL объектов без завершающего слэша.
func minioPublicBase(cfg MinioConfig) string {
	if cfg.PublicBase != "" {
		return strings.TrimRight(cfg.PublicBase, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

// Save загружает объект в bucket.
func (s *MinioStore) Save(ctx context.Context, r io.Reader, size int64, filename, contentType string) (*SaveResult, error) {
	info, err := s.client.PutObject(ctx, s.bucket, filename, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки объекта %s в bucket %s: %w", filename, s.bucket, err)
	}

	objectURL := s.objectURL(filename)
	return &SaveResult{
		StoragePath: objectURL,
		FullPath:    objectURL,
		Size:        info.Size,
	}, nil
}

// Exists проверяет наличие объекта через StatObject.
func (s *MinioStore) Exists(ctx context.Context, storagePath string) bool {
	_, err := s.client.StatObject(ctx, s.bucket, s.objectName(storagePath), minio.StatObjectOptions{})
	return err == nil
}

// FullPath возвращает URL объекта.
func (s *MinioStore) FullPath(storagePath string) string {
	return s.objectURL(s.objectName(storagePath))
}

// Backend возвращает "minio".
func (s *MinioStore) Backend() string {
	return "minio"
}

// objectURL — {publicBase}/{bucket}/{escaped name}.
func (s *MinioStore) objectURL(name string) string {
	return s.publicBase + "/" + s.bucket + "/" + url.PathEscape(name)
}

// objectName извлекает имя объекта из URL или /uploads/-пути.
func (s *MinioStore) objectName(storagePath string) string {
	name := storagePath
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
