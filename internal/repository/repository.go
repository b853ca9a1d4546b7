// Пакет repository — Record Store PanelVoices: доступ к двум независимым
// коллекциям (аудиообразцы и генерации). Две реализации: PostgreSQL (чистый
// SQL через pgx, без ORM) и MongoDB. Бизнес-правил нет, кэширования нет.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
)

// AudioRepository — доступ к коллекции аудиообразцов.
type AudioRepository interface {
	// InsertAudio сохраняет запись и возвращает назначенный ID.
	// Уникальность по языку хранилищем не обеспечивается.
	InsertAudio(ctx context.Context, rec *model.AudioRecord) (string, error)
	// FindAudioByLanguage возвращает самую свежую запись языка или ErrNotFound.
	FindAudioByLanguage(ctx context.Context, lang model.Language) (*model.AudioRecord, error)
	// ListAudio возвращает все записи, новые первыми.
	ListAudio(ctx context.Context) ([]*model.AudioRecord, error)
	// CountAudioByLanguage возвращает количество записей по языкам.
	CountAudioByLanguage(ctx context.Context) (model.LanguageCounts, error)
}

// GenerationRepository — доступ к коллекции генераций.
type GenerationRepository interface {
	// InsertGeneration сохраняет запись и возвращает назначенный ID.
	InsertGeneration(ctx context.Context, rec *model.GenerationRecord) (string, error)
	// FindGeneration ищет запись по точному совпадению тройки или ErrNotFound.
	FindGeneration(ctx context.Context, key model.GenerationKey) (*model.GenerationRecord, error)
	// ListGenerations возвращает записи по фильтру, новые первыми, не более filter.Limit.
	ListGenerations(ctx context.Context, filter model.GenerationFilter) ([]*model.GenerationRecord, error)
}

// Store — полный Record Store.
type Store interface {
	AudioRepository
	GenerationRepository
}

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
