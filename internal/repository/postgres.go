// postgres.go — реализация Record Store поверх PostgreSQL (pgx).
// Таблицы audio_files и audio_generations создаются миграциями
// пакета database.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/panelvoices/internal/domain/model"
)

// audioColumns — столбцы audio_files для SELECT-запросов.
const audioColumns = `id, filename, original_name, storage_path, language, uploaded_at`

// generationColumns — столбцы audio_generations для SELECT-запросов.
const generationColumns = `id, text, voice, language, audio_url, created_at, text_hash`

// pgStore — реализация Store через pgx.
type pgStore struct {
	db DBTX
}

// NewPostgresStore создаёт Record Store на PostgreSQL.
func NewPostgresStore(db DBTX) Store {
	return &pgStore{db: db}
}

// InsertAudio вставляет запись в audio_files. ID — UUID v4.
func (r *pgStore) InsertAudio(ctx context.Context, rec *model.AudioRecord) (string, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO audio_files (id, filename, original_name, storage_path, language, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.Exec(ctx, query,
		id, rec.Filename, rec.OriginalName, rec.StoragePath, string(rec.Language), rec.UploadedAt,
	); err != nil {
		return "", fmt.Errorf("ошибка вставки аудиозаписи: %w", err)
	}
	return id, nil
}

// FindAudioByLanguage возвращает самую свежую запись языка.
func (r *pgStore) FindAudioByLanguage(ctx context.Context, lang model.Language) (*model.AudioRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM audio_files WHERE language = $1 ORDER BY uploaded_at DESC, id DESC LIMIT 1`,
		audioColumns,
	)

	a, err := scanAudio(r.db.QueryRow(ctx, query, string(lang)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска аудио по языку: %w", err)
	}
	return a, nil
}

// ListAudio возвращает все аудиозаписи, новые первыми.
func (r *pgStore) ListAudio(ctx context.Context) ([]*model.AudioRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM audio_files ORDER BY uploaded_at DESC, id DESC`, audioColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка аудио: %w", err)
	}
	defer rows.Close()

	result := make([]*model.AudioRecord, 0)
	for rows.Next() {
		a, err := scanAudio(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования аудиозаписи: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// CountAudioByLanguage считает аудиозаписи по языкам.
func (r *pgStore) CountAudioByLanguage(ctx context.Context) (model.LanguageCounts, error) {
	var counts model.LanguageCounts

	rows, err := r.db.Query(ctx, `SELECT language, COUNT(*) FROM audio_files GROUP BY language`)
	if err != nil {
		return counts, fmt.Errorf("ошибка подсчёта аудио по языкам: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			lang string
			n    int
		)
		if err := rows.Scan(&lang, &n); err != nil {
			return counts, fmt.Errorf("ошибка сканирования счётчика: %w", err)
		}
		counts.Add(model.Language(lang), n)
	}
	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return counts, nil
}

// InsertGeneration вставляет запись в audio_generations.
func (r *pgStore) InsertGeneration(ctx context.Context, rec *model.GenerationRecord) (string, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO audio_generations (id, text, voice, language, audio_url, created_at, text_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := r.db.Exec(ctx, query,
		id, rec.Text, rec.Voice, rec.Language, rec.AudioURL, rec.CreatedAt, rec.TextHash,
	); err != nil {
		return "", fmt.Errorf("ошибка вставки генерации: %w", err)
	}
	return id, nil
}

// FindGeneration ищет генерацию по точному совпадению (text, voice, language).
// При нескольких совпадениях возвращается самая ранняя.
func (r *pgStore) FindGeneration(ctx context.Context, key model.GenerationKey) (*model.GenerationRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM audio_generations
		WHERE text = $1 AND voice = $2 AND language = $3
		ORDER BY created_at ASC LIMIT 1`,
		generationColumns,
	)

	g, err := scanGeneration(r.db.QueryRow(ctx, query, key.Text, key.Voice, key.Language))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска генерации: %w", err)
	}
	return g, nil
}

// ListGenerations возвращает генерации по фильтру, новые первыми.
func (r *pgStore) ListGenerations(ctx context.Context, filter model.GenerationFilter) ([]*model.GenerationRecord, error) {
	where, args := buildGenerationWhere(filter, 1)
	query := fmt.Sprintf(
		`SELECT %s FROM audio_generations %s ORDER BY created_at DESC LIMIT $%d`,
		generationColumns, where, len(args)+1,
	)
	args = append(args, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка генераций: %w", err)
	}
	defer rows.Close()

	result := make([]*model.GenerationRecord, 0)
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования генерации: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// buildGenerationWhere строит WHERE-условие фильтра генераций.
// startArg — номер первого $-параметра.
func buildGenerationWhere(filter model.GenerationFilter, startArg int) (whereClause string, args []any) {
	var conditions []string
	argNum := startArg

	if filter.Language != "" {
		conditions = append(conditions, fmt.Sprintf("language = $%d", argNum))
		args = append(args, filter.Language)
		argNum++
	}

	if filter.Voice != "" {
		conditions = append(conditions, fmt.Sprintf("voice = $%d", argNum))
		args = append(args, filter.Voice)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// scanAudio сканирует строку audio_files (pgx.Row или pgx.Rows).
func scanAudio(row pgx.Row) (*model.AudioRecord, error) {
	a := &model.AudioRecord{}
	var lang string
	if err := row.Scan(&a.ID, &a.Filename, &a.OriginalName, &a.StoragePath, &lang, &a.UploadedAt); err != nil {
		return nil, err
	}
	a.Language = model.Language(lang)
	return a, nil
}

// scanGeneration сканирует строку audio_generations.
func scanGeneration(row pgx.Row) (*model.GenerationRecord, error) {
	g := &model.GenerationRecord{}
	if err := row.Scan(&g.ID, &g.Text, &g.Voice, &g.Language, &g.AudioURL, &g.CreatedAt, &g.TextHash); err != nil {
		return nil, err
	}
	return g, nil
}
